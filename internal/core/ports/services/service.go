package services

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	Session   SessionSvcFacade
	Lifecycle LifecycleSvcFacade
}
