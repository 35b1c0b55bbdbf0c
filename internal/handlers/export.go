package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// Export writes the currently filtered customer page as an .xlsx download.
func (h *CustomerHandler) Export(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	city := r.URL.Query().Get("city")
	storeID := r.URL.Query().Get("store_id")

	customers, err := h.fetchPage(r, page, city, storeID)
	if err != nil {
		log.Printf("export customers: %v", err)
		http.Error(w, "failed to export customers", http.StatusBadGateway)
		return
	}
	_, storeNames := h.fetchStores(r)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Customers"
	f.SetSheetName("Sheet1", sheet)

	header := []any{"Name", "Phone", "Email", "City", "Store", "Source", "Created"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		log.Printf("export header: %v", err)
		http.Error(w, "failed to export customers", http.StatusInternalServerError)
		return
	}

	for i, c := range customers {
		row := []any{
			c.FullName,
			c.PhoneNumber,
			c.Email,
			c.Address.City,
			storeNames[c.StoreID],
			c.Source,
			c.CreatedAt,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			log.Printf("export row %d: %v", i, err)
			http.Error(w, "failed to export customers", http.StatusInternalServerError)
			return
		}
	}

	filename := fmt.Sprintf("customers-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		log.Printf("export write: %v", err)
	}
}
