package constants

// Permission strings issued by the identity provider.
const (
	PermAny = "any"

	PermTripManage     = "trip:manage"
	PermPackageManage  = "package:manage"
	PermDeliveryManage = "delivery:manage"
	PermMessageSend    = "message:send"
	PermReviewWrite    = "review:write"
	PermUserAdmin      = "user:admin"
)
