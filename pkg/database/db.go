package database

import (
	"errors"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = logging.Logger("database")

// DB wraps the GORM database connection
type DB struct {
	*gorm.DB
}

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(postgres.Open(databaseURL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Successfully connected to database")

	if err := db.AutoMigrate(
		&Network{},
		&Feed{},
		&FeedSnapshot{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate schema: %w", err)
	}

	log.Info("Database schema migrated successfully")

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetOrCreateNetwork uses UPSERT pattern to efficiently lookup/create network
func (db *DB) GetOrCreateNetwork(name string, chainID uint64) (uint, error) {
	var n Network
	err := db.Where(Network{Name: name}).
		Attrs(Network{Name: name, ChainID: chainID}).
		FirstOrCreate(&n).Error
	return n.ID, err
}

// GetOrCreateFeed combines network and feed lookups
func (db *DB) GetOrCreateFeed(networkName string, chainID uint64, dapiName string) (uint, error) {
	networkID, err := db.GetOrCreateNetwork(networkName, chainID)
	if err != nil {
		return 0, fmt.Errorf("failed to get/create network: %w", err)
	}

	var feed Feed
	err = db.Where(Feed{NetworkID: networkID, DapiName: dapiName}).
		Attrs(Feed{NetworkID: networkID, DapiName: dapiName}).
		FirstOrCreate(&feed).Error
	return feed.ID, err
}

// SaveFeedSnapshot records snapshot. When the latest stored snapshot of the
// feed has the same state only its CheckedAt is moved forward. It reports
// whether a new row was inserted.
func (db *DB) SaveFeedSnapshot(snapshot *FeedSnapshot) (bool, error) {
	inserted := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var latest FeedSnapshot
		err := tx.Where("feed_id = ?", snapshot.FeedID).Order("checked_at DESC").First(&latest).Error
		switch {
		case err == nil && latest.SameState(snapshot):
			return tx.Model(&latest).Update("checked_at", snapshot.CheckedAt).Error
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		inserted = true
		return tx.Create(snapshot).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to save feed snapshot: %w", err)
	}
	log.Debugf("Processed feed snapshot for feed_id %d (inserted: %t)", snapshot.FeedID, inserted)
	return inserted, nil
}

// FeedHistory returns up to limit snapshots of a feed, newest first.
func (db *DB) FeedHistory(feedID uint, limit int) ([]FeedSnapshot, error) {
	var snapshots []FeedSnapshot
	err := db.Where("feed_id = ?", feedID).Order("checked_at DESC").Limit(limit).Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load feed history: %w", err)
	}
	return snapshots, nil
}
