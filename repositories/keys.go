package repositories

import (
	"direct-chat/domain"
	"encoding/base64"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key layout:
//
//	user:{id}                                   user record
//	chat:{id}                                   chat record
//	pair:{len(min)}:{min}:{max}                 chat id, one per unordered pair
//	inbox:{user}:{unixnano}:{chat}              chat id, one per participant, moved on every message
//	msg:{chat}:{unixnano}:{seq}:{message}       message record
//
// Ids are opaque and may contain ':', so the user and chat segments of the
// scanned prefixes are base64url encoded. Timestamps are zero padded to 19
// digits and sequences to 20 so lexicographical order is chronological, with
// the per-chat sequence breaking ties inside one nanosecond.
func userKey(id string) []byte { return []byte("user:" + id) }

func chatKey(id string) []byte { return []byte("chat:" + id) }

func pairKey(a, b string) []byte { return []byte("pair:" + domain.PairKey(a, b)) }

func segment(id string) string { return base64.RawURLEncoding.EncodeToString([]byte(id)) }

func inboxPrefix(userID string) []byte { return []byte("inbox:" + segment(userID) + ":") }

func inboxKey(userID string, at time.Time, chatID string) []byte {
	return []byte(fmt.Sprintf("inbox:%s:%019d:%s", segment(userID), at.UnixNano(), chatID))
}

func messagePrefix(chatID string) []byte { return []byte("msg:" + segment(chatID) + ":") }

func messageKey(chatID string, at time.Time, seq uint64, messageID string) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%020d:%s", segment(chatID), at.UnixNano(), seq, messageID))
}

// getJSON reports false when the key does not exist.
func getJSON(txn *badger.Txn, key []byte, v any) (bool, error) {
	item, err := txn.Get(key)
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return txn.Set(key, data)
}

// scanReverse visits the values under prefix from the greatest key down,
// skipping the first skip entries and stopping after take of them.
func scanReverse(txn *badger.Txn, prefix []byte, skip, take int, visit func(val []byte) error) error {
	options := badger.DefaultIteratorOptions
	options.Reverse = true
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	// Greater than any key under prefix
	seekKey := append(append([]byte{}, prefix...), 0xFF)
	seen := 0
	for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
		if seen < skip {
			seen++
			continue
		}
		if take > 0 && seen-skip >= take {
			break
		}
		seen++
		if err := it.Item().Value(visit); err != nil {
			return err
		}
	}
	return nil
}
