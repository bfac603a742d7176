package server

// Route path constants
// All API routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthLogin     = "/auths/login"
	RouteAuthRegister  = "/auths/register"
	RouteAuthSendOTP   = "/auths/send-otp"
	RouteAuthVerifyOTP = "/auths/verify-otp"
	RouteAuthRefresh   = "/auths/refresh"

	// Book Routes
	RouteBooks     = "/books"
	RouteBook      = "/books/{id}"
	RouteBookCover = "/books/cover"

	// Cart Routes
	RouteCarts     = "/carts"
	RouteCart      = "/carts/{id}"
	RouteCartsUser = "/carts/user"

	// Checkout & Payment Routes
	RouteCheckouts           = "/checkouts/{$}"
	RouteCheckout            = "/checkouts/{id}"
	RouteCheckoutsUser       = "/checkouts/user"
	RoutePaymentsUser        = "/payments/user"
	RoutePaymentBook         = "/payments/book/{id}"
	RoutePaymentNotification = "/payments/notification"

	// Comment Routes
	RouteComments       = "/comments"
	RouteComment        = "/comments/{id}"
	RouteCommentsBook   = "/comments/book/{id}"
	RouteCommentForBook = "/comments/book/{bookID}/comment/{commentID}"

	// User Routes
	RouteUsers       = "/users"
	RouteUser        = "/users/{id}"
	RouteUserMe      = "/users/me"
	RouteUserPicture = "/users/picture"
	RouteUserRole    = "/users/role"

	// Uploaded files and operations
	RouteUploads = "/uploads/{name}"
	RouteMetrics = "/metrics"
	RouteHealth  = "/healthz"
)
