package pagination

// CalculateOffset calculates the database OFFSET value for a zero-based page.
//
// Formula: offset = page * pageSize
//
// Examples:
//   - Page 0, Size 9 -> Offset 0
//   - Page 1, Size 9 -> Offset 9
//   - Page 2, Size 9 -> Offset 18
func CalculateOffset(page, pageSize int) int {
	return page * pageSize
}

// HasMore reports whether another page likely exists after the current one,
// judged from the size of the page just returned. A full page means "more";
// a short page means the listing is exhausted. When the total item count is
// an exact multiple of the page size, the last full page reports a phantom
// extra page whose fetch returns empty.
func HasMore(returnedCount, pageSize int) bool {
	return returnedCount == pageSize
}
