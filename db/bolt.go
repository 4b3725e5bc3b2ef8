package db

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	bolt "github.com/boltdb/bolt"
)

var db *bolt.DB
var once sync.Once

const settingsBucket = "settings"
const reminderChannelKey = "reminder_channel_id"

// InitDB initializes the BoltDB connection (safe to call multiple times)
func InitDB(dbPath string) {
	once.Do(func() {
		var err error
		db, err = bolt.Open(dbPath, 0600, nil)
		if err != nil {
			log.Fatalf("Error opening BoltDB: %v", err)
		}

		// Ensure the bucket exists
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
			return err
		})
		if err != nil {
			log.Fatalf("Error creating BoltDB bucket: %v", err)
		}
	})
}

// LoadReminderChannel returns the persisted reminder channel override,
// or 0 when none has been saved.
func LoadReminderChannel() int64 {
	var channelID int64
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(settingsBucket))
		if b == nil {
			return nil
		}
		data := b.Get([]byte(reminderChannelKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &channelID)
	})

	if err != nil {
		log.Printf("Warning: Error loading reminder channel (returning unset): %v", err)
	}
	return channelID
}

// SaveReminderChannel persists the reminder channel so the setting
// survives restarts.
func SaveReminderChannel(channelID int64) {
	data, err := json.Marshal(channelID)
	if err != nil {
		log.Printf("Error marshalling reminder channel: %v", err)
		return
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(settingsBucket))
		if b == nil {
			return os.ErrNotExist
		}
		return b.Put([]byte(reminderChannelKey), data)
	})

	if err != nil {
		log.Printf("Error saving reminder channel: %v", err)
	}
}
