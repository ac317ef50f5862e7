package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.ID), data, 0).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerID, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerID))
}

// Pair operations

func (s *Storage) SavePair(ctx context.Context, pair *model.Pair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, pairKey(pair.ID), data, 0)
	pipe.Set(ctx, memberIndexKey(pair.Members[0]), string(pair.ID), 0)
	pipe.Set(ctx, memberIndexKey(pair.Members[1]), string(pair.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPair(ctx context.Context, id model.PairID) (*model.Pair, error) {
	data, err := s.client.Get(ctx, pairKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPairNotFound
		}
		return nil, err
	}

	var pair model.Pair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (s *Storage) GetPairByMember(ctx context.Context, playerID model.PlayerID) (*model.Pair, error) {
	pairID, err := s.client.Get(ctx, memberIndexKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPairNotFound
		}
		return nil, err
	}
	return s.GetPair(ctx, model.PairID(pairID))
}

func (s *Storage) DeletePair(ctx context.Context, id model.PairID) error {
	pair, err := s.GetPair(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPairNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, pairKey(id))
	pipe.Del(ctx, memberIndexKey(pair.Members[0]))
	pipe.Del(ctx, memberIndexKey(pair.Members[1]))
	_, err = pipe.Exec(ctx)
	return err
}

// Pair code operations

func (s *Storage) SavePairCode(ctx context.Context, code *model.PendingPairCode) error {
	data, err := json.Marshal(code)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, pairCodeKey(code.Code), data, s.cfg.PairCodeTTL).Err()
}

func (s *Storage) GetPairCode(ctx context.Context, code model.PairCode) (*model.PendingPairCode, error) {
	data, err := s.client.Get(ctx, pairCodeKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPairCodeNotFound
		}
		return nil, err
	}

	var pc model.PendingPairCode
	if err := json.Unmarshal(data, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}

func (s *Storage) DeletePairCode(ctx context.Context, code model.PairCode) error {
	return s.client.Del(ctx, pairCodeKey(code)).Err()
}

// Note operations

func (s *Storage) SaveNote(ctx context.Context, note *model.Note) error {
	data, err := json.Marshal(note)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, noteKey(note.ID), data, 0)
	pipe.SAdd(ctx, notesForPairIndexKey(note.PairID), string(note.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetNote(ctx context.Context, id model.NoteID) (*model.Note, error) {
	data, err := s.client.Get(ctx, noteKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoteNotFound
		}
		return nil, err
	}

	var note model.Note
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Storage) GetNotesForPair(ctx context.Context, pairID model.PairID) ([]*model.Note, error) {
	ids, err := s.client.SMembers(ctx, notesForPairIndexKey(pairID)).Result()
	if err != nil {
		return nil, err
	}

	notes := make([]*model.Note, 0, len(ids))
	for _, id := range ids {
		note, err := s.GetNote(ctx, model.NoteID(id))
		if err != nil {
			if errors.Is(err, model.ErrNoteNotFound) {
				// Index entry outlived the note; skip
				continue
			}
			return nil, err
		}
		notes = append(notes, note)
	}
	sortNotesByCreation(notes)
	return notes, nil
}

func (s *Storage) DeleteNote(ctx context.Context, id model.NoteID) error {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNoteNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, noteKey(id))
	pipe.SRem(ctx, notesForPairIndexKey(note.PairID), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Special date operations

func (s *Storage) SaveSpecialDate(ctx context.Context, date *model.SpecialDate) error {
	data, err := json.Marshal(date)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, dateKey(date.ID), data, 0)
	pipe.SAdd(ctx, datesForPairIndexKey(date.PairID), string(date.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSpecialDate(ctx context.Context, id model.SpecialDateID) (*model.SpecialDate, error) {
	data, err := s.client.Get(ctx, dateKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDateNotFound
		}
		return nil, err
	}

	var date model.SpecialDate
	if err := json.Unmarshal(data, &date); err != nil {
		return nil, err
	}
	return &date, nil
}

func (s *Storage) GetSpecialDatesForPair(ctx context.Context, pairID model.PairID) ([]*model.SpecialDate, error) {
	ids, err := s.client.SMembers(ctx, datesForPairIndexKey(pairID)).Result()
	if err != nil {
		return nil, err
	}

	dates := make([]*model.SpecialDate, 0, len(ids))
	for _, id := range ids {
		date, err := s.GetSpecialDate(ctx, model.SpecialDateID(id))
		if err != nil {
			if errors.Is(err, model.ErrDateNotFound) {
				continue
			}
			return nil, err
		}
		dates = append(dates, date)
	}
	sortDatesByDate(dates)
	return dates, nil
}

func (s *Storage) DeleteSpecialDate(ctx context.Context, id model.SpecialDateID) error {
	date, err := s.GetSpecialDate(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrDateNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, dateKey(id))
	pipe.SRem(ctx, datesForPairIndexKey(date.PairID), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func sortNotesByCreation(notes []*model.Note) {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
}

func sortDatesByDate(dates []*model.SpecialDate) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Date.Before(dates[j].Date)
	})
}
