package args

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
)

// ValueParser converts a supplied argument value. Arguments arrive either
// as strings or, in multipart requests, as file uploads; a parser handles
// both forms.
type ValueParser interface {
	ParseString(value string) (any, error)
	ParseFile(f *FileArgument) (any, error)
}

// ParserFunc adapts a plain string conversion function to the ValueParser
// interface. File uploads are read fully and parsed as UTF-8 text.
type ParserFunc func(value string) (any, error)

func (f ParserFunc) ParseString(value string) (any, error) {
	return f(value)
}

func (f ParserFunc) ParseFile(file *FileArgument) (any, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read file argument: %w", err)
	}
	return f(string(data))
}

// FileArgument is the parsed value of a file upload. It reads the file
// content and carries the client-supplied metadata.
type FileArgument struct {
	io.Reader

	// Filename is the name sent by the client, possibly empty.
	Filename string

	// ContentType is the media type sent by the client, defaulting to
	// "application/octet-stream".
	ContentType string
}

func openFileArgument(header *multipart.FileHeader) (*FileArgument, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot open file argument %q: %w", header.Filename, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &FileArgument{Reader: file, Filename: header.Filename, ContentType: contentType}, nil
}

// StringParser accepts any value unchanged.
var StringParser = ParserFunc(func(value string) (any, error) {
	return value, nil
})

// IntParser parses a base-10 integer.
var IntParser = ParserFunc(func(value string) (any, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", value)
	}
	return n, nil
})

// FloatParser parses a decimal number.
var FloatParser = ParserFunc(func(value string) (any, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", value)
	}
	return f, nil
})

// FileParser yields a *FileArgument. Plain string values are wrapped into
// an in-memory file with no filename and an octet-stream content type.
var FileParser ValueParser = fileParser{}

type fileParser struct{}

func (fileParser) ParseString(value string) (any, error) {
	return &FileArgument{
		Reader:      strings.NewReader(value),
		ContentType: "application/octet-stream",
	}, nil
}

func (fileParser) ParseFile(f *FileArgument) (any, error) {
	return f, nil
}

// FileOrStringParser yields a *FileArgument for file uploads and the
// plain string for everything else.
var FileOrStringParser ValueParser = fileOrStringParser{}

type fileOrStringParser struct{}

func (fileOrStringParser) ParseString(value string) (any, error) {
	return value, nil
}

func (fileOrStringParser) ParseFile(f *FileArgument) (any, error) {
	return f, nil
}
