// Package servers holds the wire types and echo bindings for the API described
// in api/openapi.yml. It is maintained by hand and kept in step with that
// document; spec_test.go checks that every operation is bound.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for DeliveryStatus.
const (
	Cancelled  DeliveryStatus = "cancelled"
	Delivered  DeliveryStatus = "delivered"
	Delivering DeliveryStatus = "delivering"
	Packaged   DeliveryStatus = "packaged"
	Pending    DeliveryStatus = "pending"
)

// Address defines model for Address.
type Address struct {
	City   string `json:"city"`
	Street string `json:"street"`
	Zip    string `json:"zip"`
}

// AddressAssignment defines model for AddressAssignment.
type AddressAssignment struct {
	Address Address `json:"address"`
	OrderId int64   `json:"order_id"`
}

// AuthCheck defines model for AuthCheck.
type AuthCheck struct {
	Claims map[string]interface{} `json:"claims"`
	Detail string                 `json:"detail"`
}

// Delivery defines model for Delivery.
type Delivery struct {
	Address      *Address       `json:"address,omitempty"`
	ClientId     int64          `json:"client_id"`
	CreationDate time.Time      `json:"creation_date"`
	OrderId      int64          `json:"order_id"`
	Status       DeliveryStatus `json:"status"`
	UpdateDate   time.Time      `json:"update_date"`
}

// DeliveryStatus defines model for DeliveryStatus.
type DeliveryStatus string

// DeliveryUpdate defines model for DeliveryUpdate.
type DeliveryUpdate struct {
	Address *Address        `json:"address,omitempty"`
	Status  *DeliveryStatus `json:"status,omitempty"`
}

// Detail defines model for Detail.
type Detail struct {
	Detail string `json:"detail"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewDelivery defines model for NewDelivery.
type NewDelivery struct {
	Address  *Address `json:"address,omitempty"`
	ClientId int64    `json:"client_id"`
	OrderId  int64    `json:"order_id"`
}

// BadRequest defines model for BadRequest.
type BadRequest = Error

// Conflict defines model for Conflict.
type Conflict = Error

// NotFound defines model for NotFound.
type NotFound = Error

// Unauthorized defines model for Unauthorized.
type Unauthorized = Error

// ListDeliveriesParams defines parameters for ListDeliveries.
type ListDeliveriesParams struct {
	Skip  *int `form:"skip,omitempty" json:"skip,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateDeliveryJSONRequestBody defines body for CreateDelivery for application/json ContentType.
type CreateDeliveryJSONRequestBody = NewDelivery

// SetDeliveryAddressJSONRequestBody defines body for SetDeliveryAddress for application/json ContentType.
type SetDeliveryAddressJSONRequestBody = AddressAssignment

// UpdateDeliveryJSONRequestBody defines body for UpdateDelivery for application/json ContentType.
type UpdateDeliveryJSONRequestBody = DeliveryUpdate

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List deliveries ordered by order id
	// (GET /deliveries)
	ListDeliveries(ctx echo.Context, params ListDeliveriesParams) error
	// Register a delivery for an order
	// (POST /deliveries)
	CreateDelivery(ctx echo.Context) error
	// Set the delivery address and start the delivery
	// (POST /deliveries/address)
	SetDeliveryAddress(ctx echo.Context) error
	// Verify a bearer token against the current signing key
	// (GET /deliveries/health/auth)
	CheckAuth(ctx echo.Context) error
	// Delete a delivery
	// (DELETE /deliveries/{orderId})
	DeleteDelivery(ctx echo.Context, orderId int64) error
	// Get a delivery
	// (GET /deliveries/{orderId})
	GetDelivery(ctx echo.Context, orderId int64) error
	// Update address and/or status
	// (PUT /deliveries/{orderId})
	UpdateDelivery(ctx echo.Context, orderId int64) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListDeliveries converts echo context to params.
func (w *ServerInterfaceWrapper) ListDeliveries(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListDeliveriesParams
	// ------------- Optional query parameter "skip" -------------

	err = runtime.BindQueryParameter("form", true, false, "skip", ctx.QueryParams(), &params.Skip)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter skip: %s", err))
	}

	// ------------- Optional query parameter "limit" -------------

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListDeliveries(ctx, params)
	return err
}

// CreateDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) CreateDelivery(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateDelivery(ctx)
	return err
}

// SetDeliveryAddress converts echo context to params.
func (w *ServerInterfaceWrapper) SetDeliveryAddress(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.SetDeliveryAddress(ctx)
	return err
}

// CheckAuth converts echo context to params.
func (w *ServerInterfaceWrapper) CheckAuth(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CheckAuth(ctx)
	return err
}

// DeleteDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteDelivery(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId int64

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.DeleteDelivery(ctx, orderId)
	return err
}

// GetDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) GetDelivery(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId int64

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetDelivery(ctx, orderId)
	return err
}

// UpdateDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateDelivery(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId int64

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.UpdateDelivery(ctx, orderId)
	return err
}

// This is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
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

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {

	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/deliveries", wrapper.ListDeliveries)
	router.POST(baseURL+"/deliveries", wrapper.CreateDelivery)
	router.POST(baseURL+"/deliveries/address", wrapper.SetDeliveryAddress)
	router.GET(baseURL+"/deliveries/health/auth", wrapper.CheckAuth)
	router.DELETE(baseURL+"/deliveries/:orderId", wrapper.DeleteDelivery)
	router.GET(baseURL+"/deliveries/:orderId", wrapper.GetDelivery)
	router.PUT(baseURL+"/deliveries/:orderId", wrapper.UpdateDelivery)

}
