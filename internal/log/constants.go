package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyAuthToken          = "authToken"
	KeyUserID             = "userId"
	KeyProductID          = "productId"
	KeyProducts           = "products"
	KeyProductsCount      = "productsCount"
	KeySearchQuery        = "searchQuery"
	KeyCategory           = "category"
	KeyCart               = "cart"
	KeyCartKey            = "cartKey"
	KeyCartItems          = "cartItems"
	KeyCartItemQuantity   = "cartItemQuantity"
	KeyCartItemCount      = "cartItemCount"
	KeyCartTotal          = "cartTotal"
	KeyCartPayloadSize    = "cartPayloadSize"
	KeyStorageDriver      = "storageDriver"
	KeyOrder              = "order"
	KeyOrderID            = "orderId"
	KeyOrderItems         = "orderItems"
	KeyNotification       = "notification"
	KeyDbURL              = "dbUrl"
	KeyMigrationPath      = "migrationPath"
	KeyCacheAddr          = "cacheAddr"
	KeyRequestProcessedAt = "requestProcessedAt"
)
