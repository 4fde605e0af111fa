// (c) Copyright 2016 Hewlett Packard Enterprise Development LP
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store persists warning records to PostgreSQL.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/staticbugs/toolwarn/record"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DBPool abstracts pgxpool.Pool so tests can use a mock.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var (
	errorproneColumns = []string{"batch_id", "proj", "cls", "type", "category", "message", "code", "mark", "line"}
	spotbugsColumns   = []string{"batch_id", "proj", "cls", "category", "abbrev", "type", "priority", "rank", "message", "method", "field", "lines"}
	inferColumns      = []string{"batch_id", "proj", "cls", "bug_type", "message", "severity", "lines", "procedure"}
)

// Store writes records through a DBPool.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a Store. A nil logger discards all output.
func New(pool DBPool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}
}

// NewBatch returns a fresh id grouping the rows of one ingestion run.
func NewBatch() uuid.UUID {
	return uuid.New()
}

// SaveErrorprone copies msgs into errorprone_warnings.
func (s *Store) SaveErrorprone(ctx context.Context, batch uuid.UUID, msgs []*record.ErrorproneMsg) error {
	rows := make([][]interface{}, len(msgs))
	for i, m := range msgs {
		rows[i] = []interface{}{batch, m.Proj, m.Cls, m.Typ, m.Cat, m.Msg, m.Code, m.Mark, m.Line}
	}
	return s.copyRows(ctx, "errorprone_warnings", errorproneColumns, rows)
}

// SaveSpotbugs copies msgs into spotbugs_warnings. Source line ranges are
// stored unrolled.
func (s *Store) SaveSpotbugs(ctx context.Context, batch uuid.UUID, msgs []*record.SpotbugsMsg) error {
	rows := make([][]interface{}, len(msgs))
	for i, m := range msgs {
		rows[i] = []interface{}{batch, m.Proj, m.Cls, m.Cat, m.Abbrev, m.Typ, m.Prio, m.Rank, m.Msg, m.Mth, m.Field, m.UnrollLines()}
	}
	return s.copyRows(ctx, "spotbugs_warnings", spotbugsColumns, rows)
}

// SaveInfer copies msgs into infer_warnings. Lines are stored as JSON since
// their shape is not fixed.
func (s *Store) SaveInfer(ctx context.Context, batch uuid.UUID, msgs []*record.InferMsg) error {
	rows := make([][]interface{}, len(msgs))
	for i, m := range msgs {
		lines, err := json.Marshal(m.Lines)
		if err != nil {
			return fmt.Errorf("failed to encode lines of %s: %w", m.Cls, err)
		}
		rows[i] = []interface{}{batch, m.Proj, m.Cls, m.BugType, m.Msg, m.Severity, string(lines), m.Procedure}
	}
	return s.copyRows(ctx, "infer_warnings", inferColumns, rows)
}

func (s *Store) copyRows(ctx context.Context, table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	copyCount, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err == nil && int(copyCount) != len(rows) {
		err = fmt.Errorf("mismatch in copied %s count: expected %d, got %d", table, len(rows), copyCount)
	} else if err != nil {
		err = fmt.Errorf("failed to copy %s: %w", table, err)
	}
	if err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			s.log.Error("Failed to rollback transaction", zap.String("table", table), zap.Error(rollbackErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.log.Debug("Persisted warnings", zap.String("table", table), zap.Int("rows", len(rows)))
	return nil
}
