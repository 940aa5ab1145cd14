package handlers

// HandlerBundle groups the handlers the router mounts.
type HandlerBundle struct {
	User   *UserHandler
	Doctor *DoctorHandler
	Admin  *AdminHandler
}
