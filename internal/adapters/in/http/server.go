// Package http exposes the order dispatch operations over HTTP.
// Handlers translate between the wire format and application commands and
// queries; every error leaving this package is one of the fixed client-facing
// messages, never a raw internal error.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Client-facing messages. Fixed strings: clients match on them.
const (
	msgSuccess             = "SUCCESS"
	msgOrderNotFound       = "Order not found"
	msgInternalServerError = "Internal server error"
	msgInvalidOrigin       = "Invalid origin"
	msgInvalidDestination  = "Invalid destination"
	msgInvalidOrderID      = "Invalid order ID"
	msgInvalidOrderStatus  = "Invalid order status"
	msgInvalidQueryString  = "Invalid query string"
	msgInvalidPage         = "Invalid page"
	msgInvalidLimit        = "Invalid limit"
)

type placeOrderCommandHandler interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error)
}

type takeOrderCommandHandler interface {
	Handle(ctx context.Context, cmd commands.TakeOrderCommand) error
}

type listOrdersQueryHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.ListOrdersQueryResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler placeOrderCommandHandler
	takeOrderHandler  takeOrderCommandHandler
	listOrdersHandler listOrdersQueryHandler
	logger            *zap.Logger
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler placeOrderCommandHandler,
	takeOrderHandler takeOrderCommandHandler,
	listOrdersHandler listOrdersQueryHandler,
	logger *zap.Logger,
) *Server {
	return &Server{
		placeOrderHandler: placeOrderHandler,
		takeOrderHandler:  takeOrderHandler,
		listOrdersHandler: listOrdersHandler,
		logger:            logger,
	}
}

// RegisterRoutes attaches the order endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.PlaceOrder)
	e.PATCH("/orders/:id", s.TakeOrder)
	e.GET("/orders", s.ListOrders)
}

type errorResponse struct {
	Error string `json:"error"`
}

type orderResponse struct {
	ID       int64  `json:"id"`
	Distance int    `json:"distance"`
	Status   string `json:"status"`
}

type takeOrderResponse struct {
	Status string `json:"status"`
}

// placeOrderRequest keeps both coordinate pairs raw so each one reports its
// own validation message: a malformed origin must never surface as a
// destination error and vice versa.
type placeOrderRequest struct {
	Origin      json.RawMessage `json:"origin"`
	Destination json.RawMessage `json:"destination"`
}

type takeOrderRequest struct {
	Status string `json:"status"`
}

// PlaceOrder handles POST /orders.
//
//	@Summary		Place a delivery order
//	@Description	Resolves the road distance between origin and destination and stores a new UNASSIGNED order.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		object{origin=[]string,destination=[]string}	true	"Coordinate pairs as [latitude, longitude] strings"
//	@Success		200		{object}	orderResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/orders [post]
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidOrigin})
	}

	// A pair that is not a string array stays nil and fails pair validation.
	var originPair, destinationPair []string
	_ = json.Unmarshal(req.Origin, &originPair)
	_ = json.Unmarshal(req.Destination, &destinationPair)

	cmd, err := commands.NewPlaceOrderCommand(originPair, destinationPair)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidOrigin) {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidOrigin})
		}
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidDestination})
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logger.Error("place order failed", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternalServerError})
	}

	return ctx.JSON(http.StatusOK, orderResponse{
		ID:       placed.ID(),
		Distance: placed.DistanceMeters(),
		Status:   placed.Status().String(),
	})
}

// TakeOrder handles PATCH /orders/:id.
//
// A claim that loses the race to a concurrent courier reports the same
// outcomes a sequential loser would see: 404 when the row is gone, 400 when
// the order is no longer unassigned. Lost races are normal operation and are
// not logged as errors.
//
//	@Summary		Claim an order
//	@Description	Atomically moves an UNASSIGNED order to TAKEN. At most one concurrent claim succeeds.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Order ID"
//	@Param			request	body		takeOrderRequest		true	"Must be {\"status\": \"TAKEN\"}"
//	@Success		200		{object}	takeOrderResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/orders/{id} [patch]
func (s *Server) TakeOrder(ctx echo.Context) error {
	// An unreadable body leaves the status empty; the command still checks
	// the id first, so a bad id wins over a bad body.
	var req takeOrderRequest
	_ = ctx.Bind(&req)

	cmd, err := commands.NewTakeOrderCommand(ctx.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidOrderID) {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidOrderID})
		}
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidOrderStatus})
	}

	err = s.takeOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, takeOrderResponse{Status: msgSuccess})
	case errors.Is(err, commands.ErrOrderNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: msgOrderNotFound})
	case errors.Is(err, commands.ErrInvalidOrderStatus):
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidOrderStatus})
	default:
		s.logger.Error("take order failed", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternalServerError})
	}
}

// ListOrders handles GET /orders.
//
//	@Summary		List orders
//	@Description	Returns a page of orders, newest first. Omitting limit returns the whole listing.
//	@Tags			orders
//	@Produce		json
//	@Param			page	query		int	true	"1-based page number"
//	@Param			limit	query		int	false	"Page size; 0 or absent means unlimited"
//	@Success		200		{array}		orderResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/orders [get]
func (s *Server) ListOrders(ctx echo.Context) error {
	if ctx.Request().URL.RawQuery == "" {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidQueryString})
	}

	query, err := queries.NewListOrdersQuery(
		ctx.QueryParam("page"),
		ctx.QueryParam("limit"),
	)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidPage) {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidPage})
		}
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidLimit})
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("list orders failed", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternalServerError})
	}

	response := make([]orderResponse, len(orders))
	for i, o := range orders {
		response[i] = orderResponse{
			ID:       o.ID,
			Distance: o.DistanceMeters,
			Status:   o.Status,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
