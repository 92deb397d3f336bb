package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/catalog"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/go-playground/form"
	"github.com/gorilla/mux"
	"gopkg.in/go-playground/validator.v9"
)

// msgModelNotFound is the message of the demo routes for a missing model.
const msgModelNotFound = "模型不存在"

// resultWriter writes the outcome of a gz.HandlerWithResult.
type resultWriter func(w http.ResponseWriter, r *http.Request, result interface{}, em *gz.ErrMsg)

// serve adapts a gz.HandlerWithResult into an http.Handler. The handler runs
// against the gallery DB and write renders its result or error.
func serve(handler gz.HandlerWithResult, write resultWriter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var result interface{}
		var em *gz.ErrMsg
		if globals.DB == nil {
			em = gz.NewErrorMessage(gz.ErrorNoDatabase)
		} else {
			result, em = handler(globals.DB, w, r)
		}
		if em != nil {
			logger := gz.LoggerFromContext(r.Context())
			if statusOf(em) >= http.StatusInternalServerError {
				logger.Error(r.Method, r.URL.String(), em.Msg, em.BaseError)
			} else {
				logger.Debug(r.Method, r.URL.String(), em.Msg, em.Extra)
			}
		}
		write(w, r, result, em)
	})
}

// EnvelopeResult serves the listing envelope. Errors are reported inside the
// envelope, with the HTTP status as code and a 200 response. Every server
// side error is reported as 500.
func EnvelopeResult(handler gz.HandlerWithResult) http.Handler {
	return serve(handler, func(w http.ResponseWriter, r *http.Request, result interface{}, em *gz.ErrMsg) {
		env := catalog.Envelope{Code: catalog.CodeOK, Msg: "success"}
		if em != nil {
			status := statusOf(em)
			if status > http.StatusInternalServerError {
				status = http.StatusInternalServerError
			}
			env.Code = strconv.Itoa(status)
			env.Msg = em.Msg
		} else if page, ok := result.(*catalog.Page); ok {
			env.Data = page
		}
		writeJSON(w, http.StatusOK, env)
	})
}

// DemoResult serves the JSON result of the demo routes. Errors become
// {success:false, message} with the error's HTTP status.
func DemoResult(handler gz.HandlerWithResult) http.Handler {
	return serve(handler, func(w http.ResponseWriter, r *http.Request, result interface{}, em *gz.ErrMsg) {
		if em != nil {
			writeDemoError(w, em)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})
}

// NoResult serves handlers that write their own response. Only errors are
// written here.
func NoResult(handler gz.HandlerWithResult) http.Handler {
	return serve(handler, func(w http.ResponseWriter, r *http.Request, _ interface{}, em *gz.ErrMsg) {
		if em != nil {
			writeDemoError(w, em)
		}
	})
}

func writeDemoError(w http.ResponseWriter, em *gz.ErrMsg) {
	msg := em.Msg
	if em.ErrCode == gz.ErrorIDNotFound {
		msg = msgModelNotFound
	}
	writeJSON(w, statusOf(em), catalog.DemoResult{Success: false, Message: msg})
}

// statusOf returns the HTTP status of an error message.
func statusOf(em *gz.ErrMsg) int {
	if em.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return em.StatusCode
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// readModelID reads the {id} route variable.
func readModelID(r *http.Request) (uint, *gz.ErrMsg) {
	idStr, ok := mux.Vars(r)["id"]
	if !ok {
		return 0, gz.NewErrorMessage(gz.ErrorIDNotInRequest)
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, gz.NewErrorMessageWithArgs(gz.ErrorFormInvalidValue, err, []string{"id"})
	}
	return uint(id), nil
}

// ParseStruct reads the http request and decodes sent values
// into the given struct. It uses the isForm bool to know if the values comes
// as "request.Form" values or as "request.Body".
// It also calls validator to validate the struct fields.
func ParseStruct(s interface{}, r *http.Request, isForm bool) *gz.ErrMsg {
	// TODO: stop using globals. Move to own packages.
	if isForm {
		if err := r.ParseForm(); err != nil {
			return gz.NewErrorMessageWithBase(gz.ErrorForm, err)
		}
		if errs := globals.FormDecoder.Decode(s, r.Form); errs != nil {
			return gz.NewErrorMessageWithArgs(gz.ErrorFormInvalidValue, errs,
				getDecodeErrorsExtraInfo(errs))
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(s); err != nil {
			return gz.NewErrorMessageWithBase(gz.ErrorUnmarshalJSON, err)
		}
	}
	// Validate struct values
	if em := ValidateStruct(s); em != nil {
		return em
	}
	return nil
}

// ValidateStruct Validate struct values using golang validator.v9
func ValidateStruct(s interface{}) *gz.ErrMsg {
	if errs := globals.Validate.Struct(s); errs != nil {
		return gz.NewErrorMessageWithArgs(gz.ErrorFormInvalidValue, errs,
			getValidationErrorsExtraInfo(errs))
	}
	return nil
}

// Builds the ErrMsg extra info from the given DecodeErrors
func getDecodeErrorsExtraInfo(err error) []string {
	errs, ok := err.(form.DecodeErrors)
	if !ok {
		return []string{err.Error()}
	}
	extra := make([]string, 0, len(errs))
	for field, er := range errs {
		extra = append(extra, fmt.Sprintf("Field: %s. %v", field, er.Error()))
	}
	return extra
}

// Builds the ErrMsg extra info from the given ValidationErrors
func getValidationErrorsExtraInfo(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	extra := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		extra = append(extra, fmt.Sprintf("%s:%v", fe.StructField(), fe.Value()))
	}
	return extra
}

