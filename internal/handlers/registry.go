package handlers

// AppHandlers holds every HTTP handler in the application.
type AppHandlers struct {
	UserHandler        *UserHandler
	CompanyHandler     *CompanyHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
}
