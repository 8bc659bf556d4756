package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"moviedb/errs"
)

const (
	codeBadValue           = 2
	codeTypeMismatch       = 14
	codeNamespaceExists    = 48
	codeDocumentValidation = 121
)

var (
	dupKeyRe   = regexp.MustCompile(`dup key: \{ (.*) \}`)
	dupFieldRe = regexp.MustCompile(`(\w+): ("(?:[^"\\]|\\.)*"|[^,]+)`)
)

// translateError maps driver failures onto application errors. The entity
// and keys name the document for a missing single-document lookup.
func translateError(err error, notFound ...interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) && len(notFound) > 0 {
		return errs.NotFound(fmt.Sprint(notFound[0]), notFound[1:]...)
	}
	if mongo.IsDuplicateKeyError(err) {
		return errs.Errorf(errs.ECONFLICT, "%s", duplicateMessage(err))
	}

	var se mongo.ServerError
	if errors.As(err, &se) {
		switch {
		case se.HasErrorCode(codeDocumentValidation):
			return errs.Errorf(errs.EINVALID, "Validation error: document failed validation")
		case se.HasErrorCode(codeBadValue), se.HasErrorCode(codeTypeMismatch):
			return errs.Errorf(errs.EINVALID, "Cast error: %s", serverMessage(err))
		}
	}

	var de *bsoncodec.DecodeError
	if errors.As(err, &de) {
		return errs.Errorf(errs.EINVALID, "Cast error: %s", de.Error())
	}

	if unavailable(err) {
		return errs.Errorf(errs.EUNAVAILABLE, "Database unavailable")
	}
	return fmt.Errorf("mongodb: %w", err)
}

func unavailable(err error) bool {
	var sse topology.ServerSelectionError
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &sse)
}

// duplicateMessage renders the dup key of an E11000 error as
// "Duplicate key error: f1=v1, f2=v2".
func duplicateMessage(err error) string {
	m := dupKeyRe.FindStringSubmatch(err.Error())
	if m == nil {
		return "Duplicate key error"
	}
	var pairs []string
	for _, f := range dupFieldRe.FindAllStringSubmatch(m[1], -1) {
		pairs = append(pairs, f[1]+"="+strings.Trim(strings.TrimSpace(f[2]), `"`))
	}
	if len(pairs) == 0 {
		return "Duplicate key error"
	}
	return "Duplicate key error: " + strings.Join(pairs, ", ")
}

func serverMessage(err error) string {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Message
	}
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 {
		return we.WriteErrors[0].Message
	}
	return err.Error()
}
