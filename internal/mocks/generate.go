// Package mocks provides generated mock implementations of the port
// interfaces for use in service and handler tests.
//
// The mocks are generated with go.uber.org/mock (gomock). To regenerate
// after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockContactRepo(ctrl)
//	repo.EXPECT().Get(gomock.Any(), "id").Return(msg, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mocks.go github.com/lifewood/adminhub/internal/ports ContactRepo,ApplicantRepo,JobRepo,SessionStore,Notifier,ResumeStore,RateLimiter,Cache
