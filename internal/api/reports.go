package api

import "net/http"

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Summarize(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, summaryResponse{
		TotalProducts: s.TotalProducts,
		TotalOrders:   s.TotalOrders,
		TotalRevenue:  formatMoney(s.TotalRevenue),
		TotalPayments: formatMoney(s.TotalPayments),
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListActiveProducts(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}
