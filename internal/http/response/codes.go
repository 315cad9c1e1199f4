package response

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeNotFound        = 404
	CodeBusinessFailed  = 422
	CodeInternal        = 500
	CodeUpstreamFailed  = 502
	CodeUpstreamInvalid = 503
)
