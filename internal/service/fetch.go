package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/bassista/go_observe/internal/httpclient"
	"github.com/bassista/go_observe/internal/model"
	"github.com/bassista/go_observe/internal/stream"
	"github.com/go-playground/validator/v10"
	"github.com/samber/ro"
)

var validate = validator.New()

// getJSON returns a lazy stream that GETs url once per subscription and
// decodes the body into T. A null body, a body of the wrong shape and a
// decoded value rejected by check all fail with *DecodeError.
func getJSON[T any](client httpclient.Getter, url string, check func(T) error) ro.Observable[T] {
	return ro.Pipe1(
		stream.Single(func(ctx context.Context) (*httpclient.Response, error) {
			return client.Get(ctx, url)
		}),
		stream.TryMap(func(resp *httpclient.Response) (T, error) {
			var v T
			if bytes.Equal(bytes.TrimSpace(resp.Body), []byte("null")) {
				return v, &DecodeError{URL: url, Err: ErrNullBody}
			}
			if err := json.Unmarshal(resp.Body, &v); err != nil {
				return v, &DecodeError{URL: url, Err: err}
			}
			if err := check(v); err != nil {
				return v, &DecodeError{URL: url, Err: err}
			}
			return v, nil
		}),
	)
}

func validNote(n model.Note) error {
	return validate.Struct(n)
}

func validNotes(notes []model.Note) error {
	for i, n := range notes {
		if err := validate.Struct(n); err != nil {
			return fmt.Errorf("note %d: %w", i, err)
		}
	}
	return nil
}

func validUser(u model.User) error {
	return validate.Struct(u)
}
