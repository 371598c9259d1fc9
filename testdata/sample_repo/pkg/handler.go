package pkg

// Handle processes one request.
func Handle() {}
