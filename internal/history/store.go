// Package history 将每次合成请求记录到 SQLite，便于排查哪些输入被清洗掉了。
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/iabetor/pisay/internal/database"
	"github.com/iabetor/pisay/internal/tts"
)

// Entry 是一条合成历史。
type Entry struct {
	ID         string
	Input      string
	Filtered   string
	Engine     string
	WAVPath    string
	Skipped    bool
	Samples    int
	SampleRate int
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// Stats 汇总统计。
type Stats struct {
	Total   int
	Skipped int
}

// Store 读写 synth_history 表。
type Store struct {
	db *database.DB
}

var _ tts.Recorder = (*Store)(nil)

// NewStore 创建历史存储并确保表已存在。
func NewStore(db *database.DB) (*Store, error) {
	if err := db.Migrate(); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Record 实现 tts.Recorder。
func (s *Store) Record(ctx context.Context, engine string, r tts.Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO synth_history
			(id, input, filtered, engine, wav_path, skipped, samples, sample_rate, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Input, r.Text, engine, r.WAVPath, r.Skipped,
		r.Samples, r.SampleRate, r.Elapsed.Milliseconds(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("[history] 写入记录失败: %w", err)
	}
	return nil
}

// Recent 返回最近的 limit 条记录，按时间倒序。
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, filtered, engine, wav_path, skipped, samples, sample_rate, elapsed_ms, created_at
		FROM synth_history ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("[history] 查询记录失败: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var elapsedMs int64
		if err := rows.Scan(&e.ID, &e.Input, &e.Filtered, &e.Engine, &e.WAVPath, &e.Skipped,
			&e.Samples, &e.SampleRate, &elapsedMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("[history] 读取记录失败: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats 返回总请求数和被跳过的请求数。
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN skipped THEN 1 ELSE 0 END), 0) FROM synth_history`,
	).Scan(&st.Total, &st.Skipped)
	if err != nil {
		return Stats{}, fmt.Errorf("[history] 统计失败: %w", err)
	}
	return st, nil
}
