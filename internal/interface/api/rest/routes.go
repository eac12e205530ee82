package rest

const (
	RoutePersons   = "/person"
	RoutePerson    = RoutePersons + "/:id"
	RoutePersonAge = RoutePersons + "/age/:id"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
