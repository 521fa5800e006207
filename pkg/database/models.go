package database

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"time"
)

// Network is a chain feeds are read from.
type Network struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(64);uniqueIndex" json:"name"`
	ChainID   uint64    `gorm:"not null" json:"chainId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Network) TableName() string {
	return "networks"
}

// Feed is a dAPI monitored on one network.
type Feed struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	NetworkID uint      `gorm:"not null;uniqueIndex:idx_network_dapi" json:"networkId"`
	DapiName  string    `gorm:"type:varchar(32);uniqueIndex:idx_network_dapi" json:"dapiName"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Feed) TableName() string {
	return "feeds"
}

// BigInt is a wrapper around big.Int that implements sql.Scanner and driver.Valuer
// for proper PostgreSQL numeric type handling
type BigInt struct {
	*big.Int
}

// NewBigInt creates a new BigInt from a big.Int pointer
func NewBigInt(i *big.Int) BigInt {
	if i == nil {
		return BigInt{big.NewInt(0)}
	}
	return BigInt{i}
}

// Scan implements sql.Scanner for reading from database
func (b *BigInt) Scan(value interface{}) error {
	if value == nil {
		b.Int = big.NewInt(0)
		return nil
	}

	switch v := value.(type) {
	case int64:
		b.Int = big.NewInt(v)
	case []byte:
		b.Int = new(big.Int)
		if _, ok := b.Int.SetString(string(v), 10); !ok {
			return fmt.Errorf("failed to parse big.Int from bytes: %s", string(v))
		}
	case string:
		b.Int = new(big.Int)
		if _, ok := b.Int.SetString(v, 10); !ok {
			return fmt.Errorf("failed to parse big.Int from string: %s", v)
		}
	default:
		return fmt.Errorf("unsupported type for BigInt: %T", value)
	}
	return nil
}

// Value implements driver.Valuer for writing to database
func (b BigInt) Value() (driver.Value, error) {
	if b.Int == nil {
		return "0", nil
	}
	return b.Int.String(), nil
}

// Equal compares the wrapped integers; nil counts as zero.
func (b BigInt) Equal(o BigInt) bool {
	return NewBigInt(b.Int).Cmp(NewBigInt(o.Int).Int) == 0
}

// FeedSnapshot is one observed state of a feed. A row covers every check
// between CreatedAt and CheckedAt during which the on-chain value and update
// time did not change.
type FeedSnapshot struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	FeedID        uint      `gorm:"not null;index:idx_feed_checked" json:"feedId"`
	Value         BigInt    `gorm:"type:numeric" json:"value"`
	FeedTimestamp int64     `gorm:"not null" json:"feedTimestamp"`          // on-chain update time, unix seconds
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`              // When this state was first observed
	CheckedAt     time.Time `gorm:"index:idx_feed_checked" json:"checkedAt"` // When this state was last verified
}

func (FeedSnapshot) TableName() string {
	return "feed_snapshots"
}

// SameState reports whether two snapshots describe the same on-chain state.
func (s *FeedSnapshot) SameState(o *FeedSnapshot) bool {
	return s.FeedTimestamp == o.FeedTimestamp && s.Value.Equal(o.Value)
}

// NewFeedSnapshot creates a snapshot observed now.
func NewFeedSnapshot(feedID uint, value *big.Int, feedTimestamp uint32) *FeedSnapshot {
	now := time.Now()
	return &FeedSnapshot{
		FeedID:        feedID,
		Value:         NewBigInt(value),
		FeedTimestamp: int64(feedTimestamp),
		CreatedAt:     now,
		CheckedAt:     now,
	}
}
