package user

import (
	"kost/infras/otel"
	"kost/internal/domains/user/model"
	"kost/internal/domains/user/model/dto"
	"kost/internal/domains/user/service"
	"kost/shared"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	"kost/shared/validator"
	"kost/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortable = []string{constant.FieldCreatedAt, model.FieldEmail, model.FieldFullName, model.FieldLastLogin}

type Handler struct {
	service service.Tenant
	otel    otel.Otel
}

func New(service service.Tenant, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/tenants", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTenants)
		routerGroup.Get("/{id}", handler.GetTenantByID)
		routerGroup.Patch("/{id}", handler.UpdateTenant)
	})
}

// GetTenants lists tenant accounts.
// @Summary Get tenants
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by email"
// @Param level query string false "Filter by level (superadmin, admin, user)"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetTenantsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/tenants [get]
// @Security BearerAuth
func (handler *Handler) GetTenants(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTenants")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(sortable...)

	query := request.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if email := query.Get(model.FieldEmail); email != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    email,
			Table:    model.TableName,
		})
	}

	if level := query.Get(model.FieldLevel); level != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLevel,
			Operator: gDto.FilterOperatorEq,
			Value:    level,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	tenants, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tenants")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, tenants)
}

// GetTenantByID retrieves a tenant account.
// @Summary Get a tenant by ID
// @Tags Admin
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} response.Data[dto.TenantResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/tenants/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTenantByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTenantByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	tenant, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("tenant_id", id).Msg("failed to get tenant")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, tenant)
}

// UpdateTenant edits a tenant account. Only a superadmin may change the level.
// @Summary Update a tenant
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param request body dto.UpdateTenantRequest true "Update Tenant Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/tenants/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTenant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTenant")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateTenantRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("tenant_id", id).Msg("failed to update tenant")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Tenant updated successfully")
}
