package repositories

import (
	"direct-chat/domain"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
)

// ChatSummary is the operator view of one chat. LastMessage keeps its stored,
// encrypted text.
type ChatSummary struct {
	Chat         domain.DirectChat
	MessageCount int
	LastMessage  *domain.DirectChatMessage
	LastActivity time.Time
}

// SummarizeChats lists every chat of the store, most recently active first.
// Meant for tooling: it walks the whole chat prefix.
func SummarizeChats(db *badger.DB) ([]ChatSummary, error) {
	var summaries []ChatSummary
	err := db.View(func(txn *badger.Txn) error {
		var records []chatRecord
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte("chat:")
		it := txn.NewIterator(options)
		for it.Rewind(); it.Valid(); it.Next() {
			var record chatRecord
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &record) }); err != nil {
				it.Close()
				return err
			}
			records = append(records, record)
		}
		it.Close()

		for _, record := range records {
			chat, err := withParticipants(txn, record)
			if err != nil {
				return err
			}
			last, err := loadLastMessage(txn, record.LastMessageKey)
			if err != nil {
				return err
			}
			summary := ChatSummary{
				Chat:         chat,
				MessageCount: countKeys(txn, messagePrefix(record.ID)),
				LastActivity: record.LastMessageAt,
			}
			if len(last) == 1 {
				summary.LastMessage = &last[0]
			}
			summaries = append(summaries, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByActivity(summaries)
	return summaries, nil
}

func countKeys(txn *badger.Txn, prefix []byte) int {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()
	count := 0
	for it.Rewind(); it.Valid(); it.Next() {
		count++
	}
	return count
}

func sortByActivity(summaries []ChatSummary) {
	slices.SortStableFunc(summaries, func(a, b ChatSummary) int {
		return b.LastActivity.Compare(a.LastActivity)
	})
}

// InspectMapper renders the keys of this store for the Badger debug page.
// Message text is shown as stored, never decrypted.
func InspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	namespace, _, _ := strings.Cut(key, ":")
	row.Namespace = namespace

	switch namespace {
	case "user":
		var user domain.User
		if json.Unmarshal(val, &user) == nil {
			row.Type = "USER"
			row.EntityID = user.ID
			row.Timestamp = user.CreatedAt.Format(time.TimeOnly)
			row.Detail = user.Username
		}
	case "chat":
		var record chatRecord
		if json.Unmarshal(val, &record) == nil {
			row.Type = "CHAT"
			row.EntityID = record.ID
			row.Timestamp = record.UpdatedAt.Format(time.TimeOnly)
			row.Detail = fmt.Sprintf("%s <-> %s", record.ParticipantIDs[0], record.ParticipantIDs[1])
		}
	case "msg":
		var record messageRecord
		if json.Unmarshal(val, &record) == nil {
			row.Type = "MESSAGE"
			row.EntityID = record.ID
			row.Timestamp = record.CreatedAt.Format(time.TimeOnly)
			row.Detail = fmt.Sprintf("from %s, %d encrypted bytes", record.SenderID, len(record.Text))
		}
	case "pair", "inbox":
		row.Type = "INDEX"
		row.Detail = "-> " + string(val)
	}
	return row
}
