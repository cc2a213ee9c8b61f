// Package servers provides primitives to interact with the openapi HTTP API.
//
// The types and the echo wrapper follow the layout oapi-codegen produces for
// openapi.yaml.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Defines values for OrderStatus.
const (
	Cancelled OrderStatus = "Cancelled"
	Delivered OrderStatus = "Delivered"
	Pending   OrderStatus = "Pending"
)

// Error defines model for Error.
type Error struct {
	HttpStatus int    `json:"httpStatus"`
	Message    string `json:"message"`
}

// Order defines model for Order.
type Order struct {
	Code          string      `json:"code"`
	Creator       string      `json:"creator"`
	DistributorId string      `json:"distributorId"`
	ReceptorId    string      `json:"receptorId"`
	Status        OrderStatus `json:"status"`
}

// OrderStatus defines model for Order.Status.
type OrderStatus string

// Receipt defines model for Receipt.
type Receipt struct {
	BlockNumber int64 `json:"blockNumber"`

	// CreatedAt Confirmation time in milliseconds since the epoch
	CreatedAt       int64          `json:"createdAt"`
	Order           *ShippingOrder `json:"order,omitempty"`
	TransactionHash string         `json:"transactionHash"`
}

// ShippingOrder defines model for ShippingOrder.
type ShippingOrder struct {
	Code          *string `json:"code,omitempty"`
	DistributorId *string `json:"distributorId,omitempty"`
	ReceptorId    *string `json:"receptorId,omitempty"`
}

// Welcome defines model for Welcome.
type Welcome struct {
	Message string `json:"message"`
}

// OrderCode defines model for OrderCode.
type OrderCode = string

// CreateDeliveryJSONRequestBody defines body for CreateDelivery for application/json ContentType.
type CreateDeliveryJSONRequestBody = ShippingOrder

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Welcome message
	// (GET /)
	GetWelcome(ctx echo.Context) error
	// List every shipping order in creation order
	// (GET /delivery)
	ListDeliveries(ctx echo.Context) error
	// Create a shipping order
	// (POST /delivery)
	CreateDelivery(ctx echo.Context) error
	// Read a shipping order
	// (GET /delivery/{id})
	GetDelivery(ctx echo.Context, id OrderCode) error
	// Cancel a pending shipping order
	// (PUT /delivery/{id}/cancel)
	CancelDelivery(ctx echo.Context, id OrderCode) error
	// Mark a pending shipping order as delivered
	// (PUT /delivery/{id}/deliver)
	DeliverDelivery(ctx echo.Context, id OrderCode) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetWelcome converts echo context to params.
func (w *ServerInterfaceWrapper) GetWelcome(ctx echo.Context) error {
	return w.Handler.GetWelcome(ctx)
}

// ListDeliveries converts echo context to params.
func (w *ServerInterfaceWrapper) ListDeliveries(ctx echo.Context) error {
	return w.Handler.ListDeliveries(ctx)
}

// CreateDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) CreateDelivery(ctx echo.Context) error {
	return w.Handler.CreateDelivery(ctx)
}

// GetDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) GetDelivery(ctx echo.Context) error {
	id, err := bindOrderCode(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetDelivery(ctx, id)
}

// CancelDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) CancelDelivery(ctx echo.Context) error {
	id, err := bindOrderCode(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelDelivery(ctx, id)
}

// DeliverDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) DeliverDelivery(ctx echo.Context) error {
	id, err := bindOrderCode(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeliverDelivery(ctx, id)
}

func bindOrderCode(ctx echo.Context) (OrderCode, error) {
	var id OrderCode
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is an interface that wraps the methods of echo.Echo and echo.Group
// used to register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/", wrapper.GetWelcome)
	router.GET(baseURL+"/delivery", wrapper.ListDeliveries)
	router.POST(baseURL+"/delivery", wrapper.CreateDelivery)
	router.GET(baseURL+"/delivery/:id", wrapper.GetDelivery)
	router.PUT(baseURL+"/delivery/:id/cancel", wrapper.CancelDelivery)
	router.PUT(baseURL+"/delivery/:id/deliver", wrapper.DeliverDelivery)
}
