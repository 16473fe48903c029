// ABOUTME: Sleep-record operations on the Charm KV store.
// ABOUTME: Keys carry the (start, end) identity pair; payloads are JSON.
package charm

import (
	"encoding/json"
	"fmt"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/store"
)

// PutRecord stores one record under its identity key. Writing the same
// (start, end) pair again overwrites in place, mirroring the reconciler's
// update semantics.
func (c *Client) PutRecord(rec *models.SleepRecord) error {
	if !rec.HasTimes() {
		return fmt.Errorf("record without resolved times cannot sync")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return c.set(RecordPrefix+rec.Key().String(), data)
}

// PutRecords pushes a batch with a single trailing cloud sync.
func (c *Client) PutRecords(recs []*models.SleepRecord) error {
	wasAuto := c.autoSync
	c.SetAutoSync(false)
	defer c.SetAutoSync(wasAuto)

	for _, rec := range recs {
		if !rec.HasTimes() {
			continue
		}
		if err := c.PutRecord(rec); err != nil {
			return err
		}
	}
	return c.Sync()
}

// ListRecords pulls every synced record, unordered. Invalid payloads are
// skipped rather than failing the pull.
func (c *Client) ListRecords() ([]*models.SleepRecord, error) {
	allData, err := c.listByPrefix(RecordPrefix)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	var recs []*models.SleepRecord
	for _, data := range allData {
		var rec models.SleepRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		recs = append(recs, &rec)
	}
	return recs, nil
}

// WipeRecords deletes every synced record from the KV store.
func (c *Client) WipeRecords() (int, error) {
	keys, err := c.keysByPrefix(RecordPrefix)
	if err != nil {
		return 0, fmt.Errorf("wipe records: %w", err)
	}
	for _, key := range keys {
		if err := c.delete(key); err != nil {
			return 0, fmt.Errorf("wipe records: %w", err)
		}
	}
	return len(keys), nil
}

// Merge combines local and remote record sets by identity key. When both
// sides hold the same (start, end) pair, the record with the later
// update_time wins. The result is sorted ready for persisting.
func Merge(local, remote []*models.SleepRecord) []*models.SleepRecord {
	byKey := make(map[models.Key]*models.SleepRecord)
	var keyless []*models.SleepRecord

	take := func(rec *models.SleepRecord) {
		if !rec.HasTimes() {
			keyless = append(keyless, rec)
			return
		}
		cur, ok := byKey[rec.Key()]
		if !ok || rec.UpdateTime.After(cur.UpdateTime) {
			byKey[rec.Key()] = rec
		}
	}
	for _, rec := range local {
		take(rec)
	}
	for _, rec := range remote {
		take(rec)
	}

	out := make([]*models.SleepRecord, 0, len(byKey)+len(keyless))
	for _, rec := range byKey {
		out = append(out, rec)
	}
	out = append(out, keyless...)
	store.SortByStart(out)
	return out
}
