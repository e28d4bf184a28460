package constants

const (
	AppStorefront          = "storefront"
	AppProductService      = "product-service"
	AppCartService         = "cart-service"
	AppOrderService        = "order-service"
	AppNotificationService = "notification-service"
	AudienceUser           = "audience-user"
	IssuerIdentity         = "identity-service"
)
