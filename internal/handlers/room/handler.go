package room

import (
	"kost/infras/otel"
	"kost/internal/domains/room/model"
	"kost/internal/domains/room/model/dto"
	"kost/internal/domains/room/service"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	"kost/shared/validator"
	"kost/transport/http/response"
	"net/http"
	"kost/shared"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const paramMaxPriceMonthly = "max_price_monthly"

var sortable = []string{constant.FieldCreatedAt, model.FieldName, model.FieldPriceWeekly, model.FieldPriceMonthly}

type Handler struct {
	service service.Room
	syncer  service.AvailabilitySyncer
	otel    otel.Otel
}

func New(service service.Room, syncer service.AvailabilitySyncer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		syncer:  syncer,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPublicRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})

	router.Post("/sync-rooms", handler.SyncRooms)
}

func filterFromRequest(request *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	query := request.URL.Query()

	if available := shared.ConvertStringToBool(query.Get(model.FieldIsAvailable)); available != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	if maxPrice := shared.ConvertStringToInt(query.Get(paramMaxPriceMonthly)); maxPrice != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  paramMaxPriceMonthly,
			Field:    model.FieldPriceMonthly,
			Operator: gDto.FilterOperatorLessEq,
			Value:    *maxPrice,
			Table:    model.TableName,
		})
	}

	if name := query.Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created " + room.ID)

	response.WithJSON(writer, http.StatusCreated, room)
}

// GetPublicRooms lists rooms after refreshing availability from active bookings.
// @Summary List rooms
// @Description Availability is recomputed from active confirmed bookings before listing.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param is_available query boolean false "Filter by availability"
// @Param name query string false "Filter by name"
// @Param max_price_monthly query integer false "Upper bound on the monthly price"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetPublicRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(sortable...)

	rooms, err := handler.service.GetPublic(ctx, queryParams, filterFromRequest(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetRooms lists rooms for the back office without running the availability sync.
// @Summary List rooms (admin)
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param is_available query boolean false "Filter by availability"
// @Param name query string false "Filter by name"
// @Param max_price_monthly query integer false "Upper bound on the monthly price"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(sortable...)

	rooms, err := handler.service.GetAll(ctx, queryParams, filterFromRequest(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, room)
}

// UpdateRoom updates a room. Setting is_available manually is allowed.
// @Summary Update a room
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room that has no bookings.
// @Summary Delete a room
// @Tags Admin
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", id).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}

// SyncRooms recomputes room availability from active confirmed bookings.
// @Summary Sync room availability
// @Description Only marks rooms unavailable. A failed pass is reported in the error field.
// @Tags Admin
// @Produce json
// @Success 200 {object} object "Sync result"
// @Router /v1/admin/sync-rooms [post]
// @Security BearerAuth
func (handler *Handler) SyncRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SyncRooms")
	defer scope.End()

	result := handler.syncer.SyncRooms(ctx)

	scope.SetAttributes(map[string]any{
		"sync.active_rooms": result.ActiveRooms,
		"sync.updated":      result.Updated,
	})

	response.WithJSON(writer, http.StatusOK, result)
}
