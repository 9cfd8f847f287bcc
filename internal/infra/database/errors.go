package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// QueryError embala a causa original depois que as tentativas se esgotam
// (ou imediatamente, se o erro não for transitório).
type QueryError struct {
	Query    string
	Attempts int
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("database query failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// ValidationError indica bug do caller: campo fora do allow-list ou
// conjunto efetivo de escrita vazio. Nunca é retentado.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reporta se err veio de uma violação de allow-list.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// isRetryable classifica falhas transitórias de conexão/rede.
// Erros vindos do servidor (*mysql.MySQLError: constraint, sintaxe,
// permissão) são fatais e nunca retentados; cancelamento de contexto idem.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	// ECONNRESET, ECONNREFUSED, EHOSTUNREACH, ETIMEDOUT
	for _, errno := range []syscall.Errno{
		syscall.ECONNRESET,
		syscall.ECONNREFUSED,
		syscall.EHOSTUNREACH,
		syscall.ETIMEDOUT,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
