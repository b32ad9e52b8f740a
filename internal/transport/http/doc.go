// Package http implements the HTTP handlers of the jobpulse API. Handlers
// stay thin: they bind and validate query parameters, call a service, and
// turn service errors into RFC 7807 problem responses.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → dataset.Store
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Handler Structure
//
//	func (h *EmploymentHandler) GetChart(w http.ResponseWriter, r *http.Request) {
//	    var req api.ChartRequest
//	    if err := h.validator.Bind(r, &req); err != nil {
//	        h.errorHandler.HandleError(w, r, err)
//	        return
//	    }
//	    data, total, err := h.service.Chart(r.Context(), ...)
//	    if err != nil {
//	        h.errorHandler.HandleError(w, r, mapServiceError(err))
//	        return
//	    }
//	    render.JSON(w, r, api.ChartResponse{...})
//	}
//
// Array filters repeat per value (?locations=Remote&locations=Austin) and
// also accept the bracketed form (?locations[]=Remote).
package http
