package gateway

import "context"

// Navigator moves the surrounding application to another entry point. The gateway
// uses it to send the user to the login flow when the session cannot be renewed.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) {
	f(ctx, path)
}

type nopNavigator struct{}

func (nopNavigator) Navigate(context.Context, string) {}
