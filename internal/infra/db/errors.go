package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Spok95/empresa-pos/internal/gateway"
)

// Classify переводит ошибку pgx в ошибку шлюза.
// Нет строки — NotFound; класс 23 (ограничения) — Validation; 28 и 42501 — Auth.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return gateway.Wrap(op, gateway.ErrNotFound, "", nil)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return gateway.Wrap(op, gateway.ErrNetwork, "", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return gateway.Wrap(op, gateway.ErrValidation, pgErr.ConstraintName, err)
		case strings.HasPrefix(pgErr.Code, "28"), pgErr.Code == "42501":
			return gateway.Wrap(op, gateway.ErrAuth, "", err)
		}
	}
	return gateway.Wrap(op, gateway.ErrNetwork, "", err)
}
