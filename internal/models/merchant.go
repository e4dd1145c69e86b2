package models

import (
	"time"
)

// Merchant roles in the distribution hierarchy.
const (
	RoleRetailer          = "retailer"
	RoleDistributor       = "distributor"
	RoleMasterDistributor = "master-distributor"
)

type Merchant struct {
	ID                  int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string    `gorm:"column:name;size:150;not null" json:"name"`
	Mobile              string    `gorm:"column:mobile;size:15;index" json:"mobile"`
	Email               string    `gorm:"column:email;size:150" json:"email"`
	Role                string    `gorm:"column:role;size:30;default:retailer" json:"role"`
	DistributorId       *int      `gorm:"column:distributor_id" json:"distributor_id"`
	MasterDistributorId *int      `gorm:"column:master_distributor_id" json:"master_distributor_id"`
	SchemeId            *int      `gorm:"column:scheme_id" json:"scheme_id"`
	Status              int       `gorm:"column:status;default:1" json:"status"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Merchant) TableName() string {
	return "merchants"
}
