package v1

// BasePath is the prefix of every JSON route
const BasePath = "/api"
