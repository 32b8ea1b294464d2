package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// User represents a staff member able to sign in.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,unique,notnull" json:"username"`
	Name         string    `bun:"name,notnull" json:"name"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         string    `bun:"role,notnull" json:"role"`
	Branch       string    `bun:"branch,nullzero" json:"branch,omitempty"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"-"`
}

// Session is used by middleware and auth handlers.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID                string         `bun:"id,pk"`
	UserID            int64          `bun:"user_id,notnull"`
	User              User           `bun:"rel:belongs-to,join:user_id=id"`
	UserRoles         []string       `bun:"-"`
	ScreenPermissions map[string]int `bun:"-"`
	ExpiresAt         time.Time      `bun:"expires_at,notnull"`
	CreatedAt         time.Time      `bun:"created_at,notnull,default:current_timestamp"`
}

// ExpiredAt reports whether the session had expired by now.
func (s Session) ExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Product is a catalog line for one branch, imported from CSV.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID         int64           `bun:"id,pk,autoincrement" json:"-"`
	SKU        string          `bun:"sku,notnull" json:"sku"`
	Name       string          `bun:"name,notnull" json:"name"`
	Price      decimal.Decimal `bun:"price,type:text,notnull" json:"price"`
	RackNumber string          `bun:"rack_number,notnull" json:"rackNumber"`
	Branch     string          `bun:"branch,notnull" json:"branch"`
	StockNew   int64           `bun:"stock_new,notnull" json:"stockNew"`
	CreatedAt  time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"-"`
	UpdatedAt  time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"-"`
}

// Box is a numbered keepstock container holding item lines.
type Box struct {
	bun.BaseModel `bun:"table:boxes,alias:b"`

	ID       string    `bun:"id,pk" json:"id"`
	Category string    `bun:"category,notnull" json:"category"`
	Seq      int       `bun:"seq,notnull" json:"-"`
	Number   string    `bun:"number,notnull" json:"number"`
	Branch   string    `bun:"branch,notnull" json:"branch"`
	Items    []BoxItem `bun:"rel:has-many,join:id=box_id" json:"items"`
}

// TotalQuantity sums the quantity of every item line.
func (b Box) TotalQuantity() int64 {
	var total int64
	for _, item := range b.Items {
		total += item.Quantity
	}
	return total
}

// BoxItem is one SKU line inside a box.
type BoxItem struct {
	bun.BaseModel `bun:"table:box_items,alias:bi"`

	ID       int64           `bun:"id,pk,autoincrement" json:"-"`
	BoxID    string          `bun:"box_id,notnull" json:"-"`
	SKU      string          `bun:"sku,notnull" json:"sku"`
	Name     string          `bun:"name,notnull" json:"name"`
	Quantity int64           `bun:"quantity,notnull" json:"quantity"`
	Price    decimal.Decimal `bun:"price,type:text,notnull" json:"price"`
}

// ActivityLog captures immutable keepstock history.
type ActivityLog struct {
	bun.BaseModel `bun:"table:activity_logs,alias:al"`

	Seq       int64     `bun:"seq,pk,autoincrement" json:"-"`
	ID        string    `bun:"id,unique,notnull" json:"id"`
	Timestamp time.Time `bun:"-" json:"timestamp"`
	UnixNano  int64     `bun:"unix_nano,notnull" json:"-"` // Timestamp in UTC nanoseconds
	Username  string    `bun:"username,notnull" json:"username"`
	Branch    string    `bun:"branch,notnull" json:"branch"`
	Action    string    `bun:"action,notnull" json:"action"`
	Details   string    `bun:"details,notnull" json:"details"`
	SKU       string    `bun:"sku,nullzero" json:"sku,omitempty"`
	BoxID     string    `bun:"box_id,nullzero" json:"boxId,omitempty"`
	Category  string    `bun:"category,nullzero" json:"category,omitempty"`
}
