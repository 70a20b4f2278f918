package entity

import "time"

type ListingKind string

const (
	KindShop       ListingKind = "SHOP"
	KindTrade      ListingKind = "TRADE"
	KindJob        ListingKind = "JOB"
	KindRealEstate ListingKind = "REAL_ESTATE"
)

func ParseListingKind(s string) (ListingKind, bool) {
	switch ListingKind(s) {
	case KindShop, KindTrade, KindJob, KindRealEstate:
		return ListingKind(s), true
	}
	return "", false
}

// Listing is the common surface of the four listing kinds.
type Listing interface {
	Localized
	ListingID() string
	Kind() ListingKind
	Owner() string
	Created() time.Time
}

type Category string

const (
	CategoryFood            Category = "FOOD"
	CategoryBeauty          Category = "BEAUTY"
	CategoryEduService      Category = "EDU_SERVICE"
	CategoryChinaMart       Category = "CHINA_MART"
	CategoryLogistics       Category = "LOGISTICS"
	CategoryFinanceExchange Category = "FINANCE_EXCHANGE"
	CategoryMobile          Category = "MOBILE"
	CategoryAdminService    Category = "ADMIN_SERVICE"
	CategoryEnt             Category = "ENT"
	CategorySvc             Category = "SVC"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryBeauty, CategoryEduService, CategoryChinaMart, CategoryLogistics,
		CategoryFinanceExchange, CategoryMobile, CategoryAdminService, CategoryEnt, CategorySvc:
		return true
	}
	return false
}

const defaultPreviewImage = "https://images.unsplash.com/photo-1547592166-23ac45744acd?w=800&q=80"

var previewImages = map[string]string{
	string(CategoryFood):       "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=800&q=80",
	string(CategoryBeauty):     "https://images.unsplash.com/photo-1560750588-73207b1ef5b8?w=800&q=80",
	string(CategoryEduService): "https://images.unsplash.com/photo-1503676260728-1c00da094a0b?w=800&q=80",
	string(CategoryChinaMart):  "https://images.unsplash.com/photo-1542838132-92c53300491e?w=800&q=80",
	string(CategoryLogistics):  "https://images.unsplash.com/photo-1586528116311-ad8dd3c8310d?w=800&q=80",
	string(KindRealEstate):     "https://images.unsplash.com/photo-1560518883-ce09059eeffa?w=800&q=80",
	string(KindJob):            "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?w=800&q=80",
	string(KindTrade):          "https://images.unsplash.com/photo-1556742502-ec7c0e9f34b1?w=800&q=80",
}

// PreviewImage returns the stock image for a category or listing kind key.
func PreviewImage(key string) string {
	if url, ok := previewImages[key]; ok {
		return url
	}
	return defaultPreviewImage
}

type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
)

type Media struct {
	URL  string    `json:"url" firestore:"url"`
	Type MediaType `json:"type" firestore:"type"`
}

type TrustMetrics struct {
	Rating        float64 `json:"rating" firestore:"rating"`
	RefundRate    float64 `json:"refund_rate" firestore:"refundRate"`
	CancelRate    float64 `json:"cancel_rate" firestore:"cancelRate"`
	ResponseScore float64 `json:"response_score" firestore:"responseScore"`
	Score         float64 `json:"score" firestore:"score"`
}

type Shop struct {
	ID                     string        `json:"id" firestore:"id"`
	Name                   LocalizedText `json:"name" firestore:"name"`
	Category               Category      `json:"category" firestore:"category"`
	Address                LocalizedText `json:"address" firestore:"address"`
	Phone                  string        `json:"phone" firestore:"phone"`
	Lat                    float64       `json:"lat" firestore:"lat"`
	Lng                    float64       `json:"lng" firestore:"lng"`
	Rating                 float64       `json:"rating" firestore:"rating"`
	ReviewCount            int           `json:"review_count" firestore:"reviewCount"`
	IsVerified             bool          `json:"is_verified" firestore:"isVerified"`
	SupportsAlipay         bool          `json:"supports_alipay" firestore:"supportsAlipay"`
	SupportsWechatPay      bool          `json:"supports_wechatpay" firestore:"supportsWechatPay"`
	Images                 []string      `json:"images" firestore:"images"`
	Description            LocalizedText `json:"description" firestore:"description"`
	CommissionRate         float64       `json:"commission_rate" firestore:"commissionRate"`
	TrustMetrics           TrustMetrics  `json:"trust_metrics" firestore:"trustMetrics"`
	SurgeScore             float64       `json:"surge_score" firestore:"surgeScore"`
	CurrentPriceMultiplier float64       `json:"current_price_multiplier" firestore:"currentPriceMultiplier"`
	LikeCount              int           `json:"like_count" firestore:"likeCount"`
	DislikeCount           int           `json:"dislike_count" firestore:"dislikeCount"`
	OpenTime               string        `json:"open_time" firestore:"openTime"`
	CloseTime              string        `json:"close_time" firestore:"closeTime"`
	SlotInterval           int           `json:"slot_interval" firestore:"slotInterval"`
	DepositRequired        bool          `json:"deposit_required" firestore:"depositRequired"`
	DepositAmount          int64         `json:"deposit_amount" firestore:"depositAmount"`
	OwnerID                string        `json:"owner_id,omitempty" firestore:"ownerId,omitempty"`
	CreatedAt              time.Time     `json:"created_at" firestore:"createdAt"`
}

func (s *Shop) ListingID() string { return s.ID }
func (s *Shop) Kind() ListingKind { return KindShop }
func (s *Shop) Owner() string { return s.OwnerID }
func (s *Shop) Created() time.Time { return s.CreatedAt }
func (s *Shop) LocalizedFields() map[string]LocalizedText {
	return map[string]LocalizedText{
		"name":        s.Name,
		"address":     s.Address,
		"description": s.Description,
	}
}

type TradeStatus string

const (
	TradeAvailable TradeStatus = "AVAILABLE"
	TradeReserved  TradeStatus = "RESERVED"
	TradeSold      TradeStatus = "SOLD"
)

type TradeItem struct {
	ID          string        `json:"id" firestore:"id"`
	SellerID    string        `json:"seller_id" firestore:"sellerId"`
	SellerName  string        `json:"seller_name" firestore:"sellerName"`
	Title       LocalizedText `json:"title" firestore:"title"`
	Price       int64         `json:"price" firestore:"price"`
	Description LocalizedText `json:"description" firestore:"description"`
	Image       string        `json:"image" firestore:"image"`
	Category    string        `json:"category" firestore:"category"`
	Status      TradeStatus   `json:"status" firestore:"status"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
	Views       int           `json:"views" firestore:"views"`
	Likes       int           `json:"likes" firestore:"likes"`
	Lat         *float64      `json:"lat,omitempty" firestore:"lat,omitempty"`
	Lng         *float64      `json:"lng,omitempty" firestore:"lng,omitempty"`
	Media       []Media       `json:"media,omitempty" firestore:"media,omitempty"`
}

func (t *TradeItem) ListingID() string { return t.ID }
func (t *TradeItem) Kind() ListingKind { return KindTrade }
func (t *TradeItem) Owner() string { return t.SellerID }
func (t *TradeItem) Created() time.Time { return t.CreatedAt }
func (t *TradeItem) LocalizedFields() map[string]LocalizedText {
	return map[string]LocalizedText{
		"title":       t.Title,
		"description": t.Description,
	}
}

type JobStatus string

const (
	JobOpen  JobStatus = "OPEN"
	JobHired JobStatus = "HIRED"
)

type JobProfile struct {
	ID          string        `json:"id" firestore:"id"`
	UserID      string        `json:"user_id" firestore:"userId"`
	Name        string        `json:"name" firestore:"name"`
	Avatar      string        `json:"avatar" firestore:"avatar"`
	Position    LocalizedText `json:"position" firestore:"position"`
	Experience  LocalizedText `json:"experience" firestore:"experience"`
	Skills      []string      `json:"skills" firestore:"skills"`
	Description LocalizedText `json:"description" firestore:"description"`
	Salary      string        `json:"salary" firestore:"salary"`
	Status      JobStatus     `json:"status" firestore:"status"`
	Views       int           `json:"views" firestore:"views"`
	Likes       int           `json:"likes" firestore:"likes"`
	Media       []Media       `json:"media,omitempty" firestore:"media,omitempty"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
}

func (j *JobProfile) ListingID() string { return j.ID }
func (j *JobProfile) Kind() ListingKind { return KindJob }
func (j *JobProfile) Owner() string { return j.UserID }
func (j *JobProfile) Created() time.Time { return j.CreatedAt }
func (j *JobProfile) LocalizedFields() map[string]LocalizedText {
	return map[string]LocalizedText{
		"position":    j.Position,
		"experience":  j.Experience,
		"description": j.Description,
	}
}

type RealEstateType string

const (
	RealEstateMonthlyRent RealEstateType = "MONTHLY_RENT"
	RealEstateJeonse      RealEstateType = "JEONSE"
)

type RealEstateItem struct {
	ID          string         `json:"id" firestore:"id"`
	UserID      string         `json:"user_id" firestore:"userId"`
	Type        RealEstateType `json:"type" firestore:"type"`
	Title       LocalizedText  `json:"title" firestore:"title"`
	Description LocalizedText  `json:"description" firestore:"description"`
	Deposit     int64          `json:"deposit" firestore:"deposit"`
	MonthlyRent int64          `json:"monthly_rent" firestore:"monthlyRent"`
	AreaSize    string         `json:"area_size" firestore:"areaSize"`
	Address     string         `json:"address" firestore:"address"`
	Media       []Media        `json:"media" firestore:"media"`
	Views       int            `json:"views" firestore:"views"`
	Likes       int            `json:"likes" firestore:"likes"`
	CreatedAt   time.Time      `json:"created_at" firestore:"createdAt"`
}

func (r *RealEstateItem) ListingID() string { return r.ID }
func (r *RealEstateItem) Kind() ListingKind { return KindRealEstate }
func (r *RealEstateItem) Owner() string { return r.UserID }
func (r *RealEstateItem) Created() time.Time { return r.CreatedAt }
func (r *RealEstateItem) LocalizedFields() map[string]LocalizedText {
	return map[string]LocalizedText{
		"title":       r.Title,
		"description": r.Description,
	}
}
