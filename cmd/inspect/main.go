package main

import (
	"direct-chat/encryption"
	"direct-chat/repositories"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "", "Dump raw keys under this prefix instead of the chat summary")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := newTable()
	if *prefix != "" {
		err = dumpPrefix(db, table, *prefix)
	} else {
		err = summarize(db, table, openerFromEnv())
	}
	if err != nil {
		log.Fatal(err)
	}
	table.Render()
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// openerFromEnv decrypts last messages only when the operator holds the passphrase.
func openerFromEnv() func(string) string {
	passphrase := os.Getenv("MESSAGE_PASSPHRASE")
	if passphrase == "" {
		color.Yellow.Println("MESSAGE_PASSPHRASE not set, message text stays encrypted")
		return func(string) string { return "<encrypted>" }
	}
	cipher, err := encryption.NewMessageCipher(passphrase)
	if err != nil {
		log.Fatal(err)
	}
	return func(payload string) string {
		text, err := cipher.Decrypt(payload)
		if err != nil {
			return color.Red.Sprint("<undecryptable>")
		}
		return text
	}
}

func summarize(db *badger.DB, table *tablewriter.Table, open func(string) string) error {
	summaries, err := repositories.SummarizeChats(db)
	if err != nil {
		return err
	}
	table.SetHeader([]string{"Chat", "Participants", "Messages", "Last activity", "Last message"})
	for _, s := range summaries {
		names := make([]string, 0, len(s.Chat.Participants))
		for _, p := range s.Chat.Participants {
			names = append(names, p.Username)
		}
		last := "-"
		if s.LastMessage != nil {
			last = open(s.LastMessage.Text)
			if s.LastMessage.Sender != nil {
				last = s.LastMessage.Sender.Username + ": " + last
			}
		}
		table.Append([]string{
			shortID(s.Chat.ID),
			strings.Join(names, ", "),
			strconv.Itoa(s.MessageCount),
			s.LastActivity.Format(time.DateTime),
			last,
		})
	}
	color.Green.Printf("%d chats\n", len(summaries))
	return nil
}

func dumpPrefix(db *badger.DB, table *tablewriter.Table, prefix string) error {
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Entity ID", "Namespace", "Detail"})
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				row := repositories.InspectMapper(key, v)
				table.Append([]string{row.Key, row.Type, row.Timestamp, shortID(row.EntityID), row.Namespace, row.Detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open %s read-only: %w", path, err)
	}
	return db, nil
}
