package client

const (
	baseUrl               = "http://localhost:8080/v1"
	usersEndpoint         = "/users"
	tokensEndpoint        = "/tokens"
	conversationsEndpoint = "/conversations"
	wsBaseUrl             = "ws://localhost:8080"
	websocketsEndpoint    = "/sub"

	registerUser         = baseUrl + usersEndpoint // POST
	getByUniqueField     = baseUrl + usersEndpoint // GET
	getCurrentActiveUser = getByUniqueField + "/current"
	searchUser           = getByUniqueField
	activateUser         = baseUrl + usersEndpoint + "/activate" // POST

	generateOTP  = baseUrl + tokensEndpoint + "/otp"  // POST
	authenticate = baseUrl + tokensEndpoint + "/auth" // POST

	getConversations = baseUrl + conversationsEndpoint
	// per-conversation message history, oldest first
	getMessagesFmt = baseUrl + conversationsEndpoint + "/%s/messages"

	subscribeTo = wsBaseUrl + websocketsEndpoint
)
