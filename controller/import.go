package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var (
	errMissingColumns = errors.New("row has missing columns")
	errBadPrice       = errors.New("invalid price value")
	errBadNumber      = errors.New("invalid numeric value")
)

// importError aborts a spreadsheet import transaction and carries the first
// offending row back to the caller.
type importError struct {
	Row    int
	Reason string
}

func (e *importError) Error() string {
	return fmt.Sprintf("Invalid data at row %d: %s.", e.Row, e.Reason)
}

// readImportRows pulls the first sheet of an uploaded xlsx form file. On
// failure it writes the error response and returns false.
func readImportRows(c *gin.Context) ([][]string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not open uploaded file."})
		return nil, false
	}
	defer file.Close()

	xlsx, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a valid spreadsheet."})
		return nil, false
	}
	defer xlsx.Close()

	rows, err := xlsx.GetRows(xlsx.GetSheetName(0))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read spreadsheet rows."})
		return nil, false
	}
	return rows, true
}
