package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/handler/http/response"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/jwt"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, attendance.ErrInvalidToken)
				return
			}

			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.HandleError(w, attendance.ErrInvalidToken)
				return
			}

			// Keep the raw bearer token around so the gateway client can
			// forward it to the remote time-tracking API.
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			ctx := jwt.ContextWithRawToken(r.Context(), raw)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
