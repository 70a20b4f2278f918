package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
)

// ListingForm is the generic post form. Every value arrives as submitted text;
// which fields matter depends on the target kind.
type ListingForm struct {
	Title          string
	Description    string
	Category       string
	Phone          string
	Address        string
	Price          string
	Position       string
	Salary         string
	Deposit        string
	MonthlyRent    string
	AreaSize       string
	RealEstateType string
}

const (
	defaultShopLat      = 37.5
	defaultShopLng      = 127.0
	defaultShopOpen     = "09:00"
	defaultShopClose    = "22:00"
	defaultSlotInterval = 30
	defaultCommission   = 0.1
	defaultTradeStatus  = entity.TradeAvailable
	defaultTradeCat     = "ETC"
	defaultREAddress    = "서울시내 주요 지역"
)

var (
	defaultExperience = entity.LocalizedText{Ko: "신입/경력", Zh: "新手/有经验", En: "New/Exp"}
	defaultSkills     = []string{"서비스"}
)

// MapListing turns a submitted form into the typed listing for kind. Free
// text is copied verbatim into every language slot; numeric fields must parse
// as non-negative whole amounts.
func MapListing(kind entity.ListingKind, form ListingForm, owner entity.UserProfile, id string, now time.Time) (entity.Listing, error) {
	title := strings.TrimSpace(form.Title)
	desc := strings.TrimSpace(form.Description)
	if title == "" {
		return nil, errors.Validation("title", "is required")
	}
	if desc == "" {
		return nil, errors.Validation("description", "is required")
	}

	switch kind {
	case entity.KindShop:
		return mapShop(form, title, desc, owner, id, now)
	case entity.KindTrade:
		return mapTrade(form, title, desc, owner, id, now)
	case entity.KindJob:
		return mapJob(form, desc, owner, id, now)
	case entity.KindRealEstate:
		return mapRealEstate(form, title, desc, owner, id, now)
	}
	return nil, errors.Validation("kind", "must be one of: SHOP TRADE JOB REAL_ESTATE")
}

func mapShop(form ListingForm, title, desc string, owner entity.UserProfile, id string, now time.Time) (entity.Listing, error) {
	category := entity.Category(strings.TrimSpace(form.Category))
	if category == "" {
		return nil, errors.Validation("category", "is required")
	}
	if !category.Valid() {
		return nil, errors.Validation("category", "is not a known category")
	}

	address := strings.TrimSpace(form.Address)
	return &entity.Shop{
		ID:                id,
		Name:              entity.Uniform(title),
		Category:          category,
		Address:           entity.LocalizedText{Ko: address, Zh: address},
		Phone:             strings.TrimSpace(form.Phone),
		Lat:               defaultShopLat,
		Lng:               defaultShopLng,
		Rating:            5.0,
		ReviewCount:       0,
		IsVerified:        false,
		SupportsAlipay:    true,
		SupportsWechatPay: true,
		Images:            []string{entity.PreviewImage(string(category))},
		Description:       entity.Uniform(desc),
		CommissionRate:    defaultCommission,
		TrustMetrics: entity.TrustMetrics{
			Rating:        5,
			RefundRate:    0,
			CancelRate:    0,
			ResponseScore: 100,
			Score:         100,
		},
		SurgeScore:             0,
		CurrentPriceMultiplier: 1,
		OpenTime:               defaultShopOpen,
		CloseTime:              defaultShopClose,
		SlotInterval:           defaultSlotInterval,
		DepositRequired:        false,
		DepositAmount:          0,
		OwnerID:                owner.ID,
		CreatedAt:              now,
	}, nil
}

func mapTrade(form ListingForm, title, desc string, owner entity.UserProfile, id string, now time.Time) (entity.Listing, error) {
	price, err := parseAmount("price", form.Price, true)
	if err != nil {
		return nil, err
	}

	return &entity.TradeItem{
		ID:          id,
		SellerID:    owner.ID,
		SellerName:  owner.Name,
		Title:       entity.Uniform(title),
		Description: entity.Uniform(desc),
		Price:       price,
		Image:       entity.PreviewImage(string(entity.KindTrade)),
		Category:    defaultTradeCat,
		Status:      defaultTradeStatus,
		CreatedAt:   now,
	}, nil
}

func mapJob(form ListingForm, desc string, owner entity.UserProfile, id string, now time.Time) (entity.Listing, error) {
	position := strings.TrimSpace(form.Position)
	if position == "" {
		return nil, errors.Validation("position", "is required")
	}

	return &entity.JobProfile{
		ID:          id,
		UserID:      owner.ID,
		Name:        owner.Name,
		Avatar:      owner.Avatar,
		Position:    entity.Uniform(position),
		Experience:  defaultExperience,
		Skills:      append([]string(nil), defaultSkills...),
		Description: entity.Uniform(desc),
		Salary:      strings.TrimSpace(form.Salary),
		Status:      entity.JobOpen,
		CreatedAt:   now,
	}, nil
}

func mapRealEstate(form ListingForm, title, desc string, owner entity.UserProfile, id string, now time.Time) (entity.Listing, error) {
	reType := entity.RealEstateType(strings.TrimSpace(form.RealEstateType))
	switch reType {
	case entity.RealEstateMonthlyRent, entity.RealEstateJeonse:
	case "":
		return nil, errors.Validation("realEstateType", "is required")
	default:
		return nil, errors.Validation("realEstateType", "must be one of: MONTHLY_RENT JEONSE")
	}

	deposit, err := parseAmount("deposit", form.Deposit, true)
	if err != nil {
		return nil, err
	}
	rent, err := parseAmount("monthlyRent", form.MonthlyRent, reType == entity.RealEstateMonthlyRent)
	if err != nil {
		return nil, err
	}

	return &entity.RealEstateItem{
		ID:          id,
		UserID:      owner.ID,
		Type:        reType,
		Title:       entity.Uniform(title),
		Description: entity.Uniform(desc),
		Deposit:     deposit,
		MonthlyRent: rent,
		AreaSize:    strings.TrimSpace(form.AreaSize),
		Address:     defaultREAddress,
		Media: []entity.Media{
			{URL: entity.PreviewImage(string(entity.KindRealEstate)), Type: entity.MediaImage},
		},
		CreatedAt: now,
	}, nil
}

// parseAmount reads a whole, non-negative amount such as "950,000". A blank
// value is an error when required and zero otherwise.
func parseAmount(field, raw string, required bool) (int64, error) {
	v := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if v == "" {
		if required {
			return 0, errors.Validation(field, "is required")
		}
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Validation(field, "must be a whole number")
	}
	if n < 0 {
		return 0, errors.Validation(field, "must not be negative")
	}
	return n, nil
}
