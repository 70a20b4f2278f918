package handler

import (
	"bytes"
	"encoding/json"

	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/service"
	"github.com/langsb16-collab/chinafood0205/internal/usecase"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/response"
	"github.com/langsb16-collab/chinafood0205/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

var listingKinds = map[string]entity.ListingKind{
	"shops":       entity.KindShop,
	"trade":       entity.KindTrade,
	"jobs":        entity.KindJob,
	"real-estate": entity.KindRealEstate,
}

func listingKind(c echo.Context) (entity.ListingKind, error) {
	kind, ok := listingKinds[c.Param("kind")]
	if !ok {
		return "", errors.NotFound("Listing kind", nil)
	}
	return kind, nil
}

// formValue accepts both "950,000" and 950000 in JSON bodies.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	*v = formValue(data)
	return nil
}

func (v *formValue) UnmarshalParam(param string) error {
	*v = formValue(param)
	return nil
}

type createListingRequest struct {
	Title          formValue `json:"title" form:"title"`
	Description    formValue `json:"description" form:"description"`
	Category       formValue `json:"category" form:"category"`
	Phone          formValue `json:"phone" form:"phone"`
	Address        formValue `json:"address" form:"address"`
	Price          formValue `json:"price" form:"price"`
	Position       formValue `json:"position" form:"position"`
	Salary         formValue `json:"salary" form:"salary"`
	Deposit        formValue `json:"deposit" form:"deposit"`
	MonthlyRent    formValue `json:"monthly_rent" form:"monthly_rent"`
	AreaSize       formValue `json:"area_size" form:"area_size"`
	RealEstateType formValue `json:"real_estate_type" form:"real_estate_type"`
}

func (r createListingRequest) form() service.ListingForm {
	return service.ListingForm{
		Title:          string(r.Title),
		Description:    string(r.Description),
		Category:       string(r.Category),
		Phone:          string(r.Phone),
		Address:        string(r.Address),
		Price:          string(r.Price),
		Position:       string(r.Position),
		Salary:         string(r.Salary),
		Deposit:        string(r.Deposit),
		MonthlyRent:    string(r.MonthlyRent),
		AreaSize:       string(r.AreaSize),
		RealEstateType: string(r.RealEstateType),
	}
}

// listingView pairs the stored listing with its fields resolved in the
// request language.
type listingView struct {
	Item    entity.Listing    `json:"item"`
	Display map[string]string `json:"display"`
}

func newListingViews(listings []entity.Listing, lang entity.Language) []listingView {
	views := make([]listingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, listingView{Item: l, Display: entity.ResolveAll(l, lang)})
	}
	return views
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	kind, err := listingKind(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), userID, kind, req.form())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listingView{Item: listing, Display: entity.ResolveAll(listing, requestLanguage(c))})
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	kind, err := listingKind(c)
	if err != nil {
		return response.Error(c, err)
	}
	pagination := utils.GetPaginationParams(c)

	filter := repository.ListingFilter{
		Category: entity.Category(c.QueryParam("category")),
	}

	listings, total, err := h.listingUseCase.ListListings(c.Request().Context(), kind, filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, newListingViews(listings, requestLanguage(c)), total, pagination.Page, pagination.PageSize)
}

// GetMyListings lists what the caller has posted under a kind.
func (h *ListingHandler) GetMyListings(c echo.Context) error {
	kind, err := listingKind(c)
	if err != nil {
		return response.Error(c, err)
	}
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	filter := repository.ListingFilter{OwnerID: userID}

	listings, total, err := h.listingUseCase.ListListings(c.Request().Context(), kind, filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, newListingViews(listings, requestLanguage(c)), total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	kind, err := listingKind(c)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), kind, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listingView{Item: listing, Display: entity.ResolveAll(listing, requestLanguage(c))})
}

// GetDirections hands off to Naver Map: an app deep link for mobile user
// agents, the web planner otherwise.
func (h *ListingHandler) GetDirections(c echo.Context) error {
	mode := service.ParseTravelMode(c.QueryParam("mode"))
	mobile := service.IsMobileUserAgent(c.Request().UserAgent())

	url, err := h.listingUseCase.Directions(c.Request().Context(), c.Param("id"), mode, mobile, requestLanguage(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"url":  url,
		"mode": string(mode),
	})
}
