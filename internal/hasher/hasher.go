package hasher

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gobcrypt/internal/bcrypt"
	"github.com/dmitrijs2005/gobcrypt/internal/config"
	"github.com/dmitrijs2005/gobcrypt/internal/entropy"
	"github.com/dmitrijs2005/gobcrypt/internal/logging"
	"github.com/dmitrijs2005/gobcrypt/internal/pbkdf"
)

// Service defines the hashing operations exposed to front ends.
//
// Contract:
//   - GenSalt: new salt string; zero cost and empty prefix fall back to config.
//   - Hash: hash string for password; a nil salt means a fresh one.
//   - Check: constant-time verification against a stored hash.
//   - DeriveKey: bcrypt_pbkdf key material; warns when rounds are few.
//   - NeedsRehash: whether a stored hash falls short of the configured cost or prefix.
//
// All blocking methods honor context cancellation.
type Service interface {
	GenSalt(ctx context.Context, cost int, prefix string) ([]byte, error)
	Hash(ctx context.Context, password, salt []byte) ([]byte, error)
	Check(ctx context.Context, password, hashed []byte) (bool, error)
	DeriveKey(ctx context.Context, password, salt []byte, keyLen int, rounds uint32, ignoreFewRounds bool) ([]byte, error)
	NeedsRehash(hashed []byte) (bool, error)
}

type service struct {
	cfg    *config.Config
	logger logging.Logger
	src    entropy.Source
}

// NewService constructs a Service. A nil src means entropy.System.
func NewService(cfg *config.Config, logger logging.Logger, src entropy.Source) Service {
	if src == nil {
		src = entropy.System
	}
	return &service{cfg: cfg, logger: logger, src: src}
}

func (s *service) GenSalt(ctx context.Context, cost int, prefix string) ([]byte, error) {
	if cost == 0 {
		cost = s.cfg.Cost
	}
	if prefix == "" {
		prefix = s.cfg.Prefix
	}

	v, err := bcrypt.ParsePrefix(prefix)
	if err != nil {
		s.logger.Error(ctx, "gensalt failed", "error", err)
		return nil, err
	}

	salt, err := bcrypt.GenSalt(s.src, cost, v)
	if err != nil {
		s.logger.Error(ctx, "gensalt failed", "cost", cost, "error", err)
		return nil, err
	}
	s.logger.Debug(ctx, "gensalt", "cost", cost, "prefix", prefix)
	return salt, nil
}

func (s *service) Hash(ctx context.Context, password, salt []byte) ([]byte, error) {
	if salt == nil {
		var err error
		if salt, err = s.GenSalt(ctx, 0, ""); err != nil {
			return nil, err
		}
	}

	cost, err := bcrypt.Cost(salt)
	if err != nil {
		s.logger.Error(ctx, "hash failed", "error", err)
		return nil, err
	}

	policy := s.cfg.Policy()
	return run(ctx, s.logger, "hash", []any{"cost", cost}, func() ([]byte, error) {
		return bcrypt.HashPasswordPolicy(password, salt, policy)
	})
}

func (s *service) Check(ctx context.Context, password, hashed []byte) (bool, error) {
	cost, err := bcrypt.Cost(hashed)
	if err != nil {
		s.logger.Error(ctx, "check failed", "error", err)
		return false, err
	}

	policy := s.cfg.Policy()
	return run(ctx, s.logger, "check", []any{"cost", cost}, func() (bool, error) {
		return bcrypt.VerifyPasswordPolicy(password, hashed, policy)
	})
}

func (s *service) DeriveKey(ctx context.Context, password, salt []byte, keyLen int, rounds uint32, ignoreFewRounds bool) ([]byte, error) {
	if rounds > 0 && rounds < pbkdf.FewRounds && !ignoreFewRounds {
		s.logger.Warn(ctx, "few kdf rounds; rounds is linear, not a bcrypt cost",
			"rounds", rounds, "recommended", pbkdf.FewRounds)
	}

	return run(ctx, s.logger, "kdf", []any{"rounds", rounds, "key_bytes", keyLen}, func() ([]byte, error) {
		return pbkdf.Key(password, salt, keyLen, rounds)
	})
}

func (s *service) NeedsRehash(hashed []byte) (bool, error) {
	p, err := bcrypt.Parse(hashed)
	if err != nil {
		return false, err
	}
	if !p.HasDigest() {
		return false, fmt.Errorf("%w: salt has no digest", bcrypt.ErrInvalidSalt)
	}
	return p.Cost < s.cfg.Cost || p.Version.String() != s.cfg.Prefix, nil
}

type result[T any] struct {
	val T
	err error
}

// run executes fn on its own goroutine and waits for it or for ctx. The
// channel is buffered so an abandoned computation can still deliver and exit.
func run[T any](ctx context.Context, logger logging.Logger, op string, attrs []any, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	start := time.Now()
	done := make(chan result[T], 1)
	go func() {
		v, err := fn()
		done <- result[T]{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		logger.Error(ctx, op+" abandoned", append(attrs, "error", ctx.Err())...)
		return zero, fmt.Errorf("%s: %w", op, ctx.Err())
	case r := <-done:
		elapsed := time.Since(start)
		if r.err != nil {
			logger.Error(ctx, op+" failed", append(attrs, "elapsed", elapsed, "error", r.err)...)
			return zero, r.err
		}
		logger.Debug(ctx, op, append(attrs, "elapsed", elapsed)...)
		return r.val, nil
	}
}
