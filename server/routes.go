package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yogarn/filkompedia-client/users"
)

func (s *Server) initRoutes() {
	api := s.APIMiddleware
	session := s.RequireSession()
	admin := s.RequireRole(users.RoleAdmin)

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), api()...))
	s.RegisterRouteHandler("POST "+RouteAuthSendOTP, ChainMiddleware(s.SendOTPHandler(), api(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthVerifyOTP, ChainMiddleware(s.VerifyOTPHandler(), api(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), api()...))

	// BOOKS
	s.RegisterRouteHandler("GET "+RouteBooks, ChainMiddleware(s.ListBooksHandler(), api(session)...))
	s.RegisterRouteHandler("GET "+RouteBook, ChainMiddleware(s.GetBookHandler(), api(session)...))
	s.RegisterRouteHandler("POST "+RouteBooks, ChainMiddleware(s.CreateBookHandler(), api(session, admin)...))
	s.RegisterRouteHandler("PATCH "+RouteBooks, ChainMiddleware(s.UpdateBookHandler(), api(session, admin)...))
	s.RegisterRouteHandler("DELETE "+RouteBook, ChainMiddleware(s.DeleteBookHandler(), api(session, admin)...))
	s.RegisterRouteHandler("POST "+RouteBookCover, ChainMiddleware(s.UploadBookCoverHandler(), api(session, admin)...))

	// CARTS
	s.RegisterRouteHandler("GET "+RouteCartsUser, ChainMiddleware(s.UserCartsHandler(), api(session)...))
	s.RegisterRouteHandler("POST "+RouteCarts, ChainMiddleware(s.AddCartHandler(), api(session)...))
	s.RegisterRouteHandler("PATCH "+RouteCarts, ChainMiddleware(s.UpdateCartHandler(), api(session)...))
	s.RegisterRouteHandler("DELETE "+RouteCart, ChainMiddleware(s.DeleteCartHandler(), api(session)...))

	// CHECKOUTS & PAYMENTS
	s.RegisterRouteHandler("POST "+RouteCheckouts, ChainMiddleware(s.CheckoutHandler(), api(session)...))
	s.RegisterRouteHandler("GET "+RouteCheckoutsUser, ChainMiddleware(s.UserCheckoutsHandler(), api(session)...))
	s.RegisterRouteHandler("GET "+RouteCheckout, ChainMiddleware(s.CheckoutItemsHandler(), api(session)...))
	s.RegisterRouteHandler("GET "+RoutePaymentsUser, ChainMiddleware(s.UserPaymentsHandler(), api(session)...))
	s.RegisterRouteHandler("GET "+RoutePaymentBook, ChainMiddleware(s.PaymentBookHandler(), api(session)...))
	if s.env == "DEV" {
		s.RegisterRouteHandler("POST "+RoutePaymentNotification, ChainMiddleware(s.PaymentNotificationHandler(), api()...))
	}

	// COMMENTS
	s.RegisterRouteHandler("GET "+RouteCommentsBook, ChainMiddleware(s.BookCommentsHandler(), api(session)...))
	s.RegisterRouteHandler("POST "+RouteComments, ChainMiddleware(s.PostCommentHandler(), api(session)...))
	s.RegisterRouteHandler("PUT "+RouteCommentForBook, ChainMiddleware(s.EditCommentHandler(), api(session)...))
	s.RegisterRouteHandler("DELETE "+RouteComment, ChainMiddleware(s.DeleteCommentHandler(), api(session)...))

	// USERS
	s.RegisterRouteHandler("GET "+RouteUserMe, ChainMiddleware(s.MeHandler(), api(session)...))
	s.RegisterRouteHandler("GET "+RouteUser, ChainMiddleware(s.GetUserHandler(), api(session)...))
	s.RegisterRouteHandler("PATCH "+RouteUsers, ChainMiddleware(s.UpdateProfileHandler(), api(session)...))
	s.RegisterRouteHandler("POST "+RouteUserPicture, ChainMiddleware(s.UploadProfilePictureHandler(), api(session)...))
	s.RegisterRouteHandler("DELETE "+RouteUser, ChainMiddleware(s.DeleteUserHandler(), api(session)...))
	s.RegisterRouteHandler("GET "+RouteUsers, ChainMiddleware(s.ListUsersHandler(), api(session, admin)...))
	s.RegisterRouteHandler("PUT "+RouteUserRole, ChainMiddleware(s.SetRoleHandler(), api(session, admin)...))

	// FILES & OPERATIONS
	s.RegisterRouteHandler("GET "+RouteUploads, ChainMiddleware(s.UploadHandler(), api()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.RegisterRouteFunc("GET "+RouteHealth, func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	})

	// CORS preflight for every route
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.CorsMiddleware))
}
