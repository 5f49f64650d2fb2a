package core

import (
	"fmt"
	"time"
)

// FuelType 是车辆燃料类型，序列化为文本值。
type FuelType string

const (
	FuelPetrol  FuelType = "Petrol"
	FuelDiesel  FuelType = "Diesel"
	FuelUnknown FuelType = "Unknown"
)

// ParseFuelType 解析文本值，大小写敏感，与存储中的枚举值保持一致。
func ParseFuelType(s string) (FuelType, error) {
	switch FuelType(s) {
	case FuelPetrol, FuelDiesel, FuelUnknown:
		return FuelType(s), nil
	}
	return "", NewDomainError(ModuleInventory, ErrorCodeInvalidInput, fmt.Sprintf("invalid fuel type: %q", s))
}

// Transmission 是变速箱类型。
type Transmission string

const (
	TransmissionManual    Transmission = "Manual"
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionUnknown   Transmission = "Unknown"
)

func ParseTransmission(s string) (Transmission, error) {
	switch Transmission(s) {
	case TransmissionManual, TransmissionAutomatic, TransmissionUnknown:
		return Transmission(s), nil
	}
	return "", NewDomainError(ModuleInventory, ErrorCodeInvalidInput, fmt.Sprintf("invalid transmission: %q", s))
}

// Car 是库存中的一辆车。
// ID / CompanyID / BranchID 由存储层维护；推荐链路只读，不修改。
type Car struct {
	ID        int64 `json:"id"`
	CompanyID int64 `json:"company_id"`
	BranchID  int64 `json:"branch_id"`

	Make         string       `json:"make"`
	Model        string       `json:"model"`
	Price        float64      `json:"price"`
	Year         int          `json:"year"`
	Kilometers   int          `json:"kilometers"`
	FuelType     FuelType     `json:"fuel_type"`
	Transmission Transmission `json:"transmission"`
	Color        string       `json:"color"`
	Seats        int          `json:"seats"`
}

// Company 是租户。
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Branch 归属于某个 Company，车辆库存挂在 Branch 下。
type Branch struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"branch_name"`
	Location  string `json:"location"`
}

// User 可以不归属任何 Company / Branch（两者为 0）。
type User struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	CompanyID   int64  `json:"company_id,omitempty"`
	BranchID    int64  `json:"branch_id,omitempty"`
}

// InteractionType 是用户行为类型。
type InteractionType string

const (
	InteractionView InteractionType = "View"
	InteractionLike InteractionType = "Like"
)

func ParseInteractionType(s string) (InteractionType, error) {
	switch InteractionType(s) {
	case InteractionView, InteractionLike:
		return InteractionType(s), nil
	}
	return "", NewDomainError(ModuleInventory, ErrorCodeInvalidInput, fmt.Sprintf("invalid interaction type: %q", s))
}

// Interaction 记录用户对车辆的一次行为。只做记录，不参与相似度计算。
type Interaction struct {
	ID        int64           `json:"id"`
	CarID     int64           `json:"car_id"`
	UserID    int64           `json:"user_id"`
	CompanyID int64           `json:"company_id"`
	BranchID  int64           `json:"branch_id"`
	Type      InteractionType `json:"interaction_type"`
	Timestamp time.Time       `json:"timestamp"`
}
