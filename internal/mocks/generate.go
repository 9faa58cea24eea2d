// Package mocks provides mock implementations for testing the identity ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the interfaces in internal/ports. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	dir := mocks.NewMockUserDirectory(ctrl)
//	dir.EXPECT().FindByEmail(gomock.Any(), "a@x.com").Return(nil, ports.ErrUserNotFound)
//
// Stateful in-memory doubles live in the auth and identity subpackages; the
// gomock mocks here are for per-call expectation tests.
package mocks

// Generate mock for UserDirectory interface from internal/ports.
// This creates MockUserDirectory with methods for all UserDirectory interface
// methods: FindByEmail, CreateUser, SetLinkedExternalID, LinkedExternalID
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_directory_mock.go github.com/chargetogether/sso-bridge/internal/ports UserDirectory

// Generate mock for GroupService interface from internal/ports.
// This creates MockGroupService with methods for all GroupService interface
// methods: AddToPrivilegedGroup
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=group_service_mock.go github.com/chargetogether/sso-bridge/internal/ports GroupService

// Generate mock for IdentityMap interface from internal/ports.
// This creates MockIdentityMap with methods for all IdentityMap interface
// methods: Lookup, Put, Remove
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_map_mock.go github.com/chargetogether/sso-bridge/internal/ports IdentityMap
