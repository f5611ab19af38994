package http

import (
	"context"
	"net/http"

	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/application/usecases/queries"
	"delivery-service/internal/core/domain/model/delivery"
	"delivery-service/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type (
	CreateDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) (*delivery.Delivery, error)
	}
	UpdateDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryCommand) (*delivery.Delivery, error)
	}
	DeleteDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteDeliveryCommand) (*delivery.Delivery, error)
	}
	SetAddressHandler interface {
		Handle(ctx context.Context, cmd commands.SetDeliveryAddressCommand) (*delivery.Delivery, error)
	}
	GetDeliveryHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveryQuery) (queries.DeliveryView, error)
	}
	ListDeliveriesHandler interface {
		Handle(ctx context.Context, query queries.ListDeliveriesQuery) ([]queries.DeliveryView, error)
	}
)

// Server implements servers.ServerInterface on top of the delivery use cases.
type Server struct {
	// Command handlers
	createHandler     CreateDeliveryHandler
	updateHandler     UpdateDeliveryHandler
	deleteHandler     DeleteDeliveryHandler
	setAddressHandler SetAddressHandler

	// Query handlers
	getHandler  GetDeliveryHandler
	listHandler ListDeliveriesHandler
}

func NewServer(
	createHandler CreateDeliveryHandler,
	updateHandler UpdateDeliveryHandler,
	deleteHandler DeleteDeliveryHandler,
	setAddressHandler SetAddressHandler,
	getHandler GetDeliveryHandler,
	listHandler ListDeliveriesHandler,
) *Server {
	return &Server{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		setAddressHandler: setAddressHandler,
		getHandler:        getHandler,
		listHandler:       listHandler,
	}
}

var _ servers.ServerInterface = (*Server)(nil)

// ListDeliveries handles GET /deliveries.
func (s *Server) ListDeliveries(ctx echo.Context, params servers.ListDeliveriesParams) error {
	skip, limit := 0, queries.DefaultLimit
	if params.Skip != nil {
		skip = *params.Skip
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListDeliveriesQuery(skip, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.listHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Delivery, len(views))
	for i, v := range views {
		response[i] = fromView(v)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDelivery handles POST /deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var body servers.NewDelivery
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var addr delivery.Address
	if body.Address != nil {
		var err error
		if addr, err = toAddress(*body.Address); err != nil {
			return writeError(ctx, err)
		}
	}

	cmd, err := commands.NewCreateDeliveryCommand(body.OrderId, body.ClientId, addr)
	if err != nil {
		return writeError(ctx, err)
	}

	d, err := s.createHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, fromDelivery(d))
}

// GetDelivery handles GET /deliveries/{orderId}.
func (s *Server) GetDelivery(ctx echo.Context, orderID int64) error {
	query, err := queries.NewGetDeliveryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromView(view))
}

// UpdateDelivery handles PUT /deliveries/{orderId}.
func (s *Server) UpdateDelivery(ctx echo.Context, orderID int64) error {
	var body servers.DeliveryUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var addr *delivery.Address
	if body.Address != nil {
		a, err := toAddress(*body.Address)
		if err != nil {
			return writeError(ctx, err)
		}
		addr = &a
	}

	var status *delivery.Status
	if body.Status != nil {
		st, err := delivery.ParseStatus(string(*body.Status))
		if err != nil {
			return writeError(ctx, err)
		}
		status = &st
	}

	cmd, err := commands.NewUpdateDeliveryCommand(orderID, addr, status)
	if err != nil {
		return writeError(ctx, err)
	}

	d, err := s.updateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromDelivery(d))
}

// DeleteDelivery handles DELETE /deliveries/{orderId}.
func (s *Server) DeleteDelivery(ctx echo.Context, orderID int64) error {
	cmd, err := commands.NewDeleteDeliveryCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if _, err = s.deleteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Detail{Detail: "Delivery deleted"})
}

// SetDeliveryAddress handles POST /deliveries/address.
func (s *Server) SetDeliveryAddress(ctx echo.Context) error {
	var body servers.AddressAssignment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	addr, err := toAddress(body.Address)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetDeliveryAddressCommand(body.OrderId, addr)
	if err != nil {
		return writeError(ctx, err)
	}

	d, err := s.setAddressHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromDelivery(d))
}

// CheckAuth handles GET /deliveries/health/auth. The token was already
// verified by the auth middleware.
func (s *Server) CheckAuth(ctx echo.Context) error {
	claims, _ := ClaimsFromContext(ctx)
	return ctx.JSON(http.StatusOK, servers.AuthCheck{
		Detail: "Token is valid",
		Claims: claims,
	})
}

func toAddress(a servers.Address) (delivery.Address, error) {
	return delivery.NewAddress(a.City, a.Street, a.Zip)
}

func fromDelivery(d *delivery.Delivery) servers.Delivery {
	response := servers.Delivery{
		OrderId:      d.OrderID(),
		ClientId:     d.ClientID(),
		Status:       servers.DeliveryStatus(d.Status()),
		CreationDate: d.CreationDate(),
		UpdateDate:   d.UpdateDate(),
	}
	if addr := d.Address(); !addr.IsEmpty() {
		response.Address = &servers.Address{City: addr.City(), Street: addr.Street(), Zip: addr.Zip()}
	}
	return response
}

func fromView(v queries.DeliveryView) servers.Delivery {
	response := servers.Delivery{
		OrderId:      v.OrderID,
		ClientId:     v.ClientID,
		Status:       servers.DeliveryStatus(v.Status),
		CreationDate: v.CreationDate,
		UpdateDate:   v.UpdateDate,
	}
	if v.City != "" || v.Street != "" || v.Zip != "" {
		response.Address = &servers.Address{City: v.City, Street: v.Street, Zip: v.Zip}
	}
	return response
}
