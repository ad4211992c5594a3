package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteLogin    = RouteAuth + "/login"
	RouteRegister = RouteAuth + "/register"
	RouteMe       = RouteApiV1 + "/me"

	// config
	RouteConfig         = RouteApiV1 + "/config"
	RouteConfigSubjects = RouteConfig + "/subjects"
	RouteConfigSubject  = RouteConfigSubjects + "/:subject_id"

	// files
	RouteFiles        = RouteApiV1 + "/files"
	RouteFilesStream  = RouteFiles + "/stream"
	RouteFilesDash    = RouteFiles + "/dashboard"
	RouteFile         = RouteFiles + "/:file_id"
	RouteFileFavorite = RouteFile + "/favorite"
	RouteFileTrash    = RouteFile + "/trash"
	RouteFileRestore  = RouteFile + "/restore"
	RouteTrash        = RouteApiV1 + "/trash"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
