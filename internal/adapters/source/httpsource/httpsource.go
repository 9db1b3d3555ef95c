// Package httpsource — общий транспорт для источников курса: запрос (метод, URL, тело, заголовки)
// плюс парсер сырого ответа.
package httpsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBody          = 2 << 20
)

type Request struct {
	Method  string
	URL     string
	Body    []byte
	Headers map[string]string
}

// ErrBodyTooLarge: ответ длиннее лимита; обрезанное тело не разбираем.
var ErrBodyTooLarge = errors.New("response body too large")

// ParseFunc разбирает тело ответа в курс.
type ParseFunc func(body []byte) (float64, error)

// Source реализует domain.PriceSource поверх Request + ParseFunc.
type Source struct {
	name  string
	req   Request
	parse ParseFunc
}

func New(name string, req Request, parse ParseFunc) *Source {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	return &Source{name: name, req: req, parse: parse}
}

func (s *Source) Name() string { return s.name }

func (s *Source) Quote(ctx context.Context, client *http.Client) (float64, error) {
	body, err := Do(ctx, client, s.req)
	if err != nil {
		return 0, err
	}
	return s.parse(body)
}

type StatusError struct{ Code int }

func (e *StatusError) Error() string   { return fmt.Sprintf("http %d", e.Code) }
func (e *StatusError) StatusCode() int { return e.Code }

// Do выполняет запрос и возвращает тело; статус вне 2xx считается ошибкой.
func Do(ctx context.Context, client *http.Client, r Request) ([]byte, error) {
	var rd io.Reader
	if len(r.Body) > 0 {
		rd = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode/100 != 2 {
		return nil, &StatusError{Code: res.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxBody)
	}
	return body, nil
}
