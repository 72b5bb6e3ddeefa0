package handlerutils

import (
	"errors"
	"log"
	"net/http"

	"github.com/drew18-it/watchbuy/internal/servererrors"
)

// MakeHandler wraps an [APIHandler] so every route shares one error
// path: [servererrors.ServerError] values map to their status code and
// message, anything else becomes a plain 500.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		log.Println(err)

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)
			return
		}

		WriteErrorJSON(
			w,
			http.StatusInternalServerError,
			"something went wrong",
			nil,
		)
	}
}
