package quill

// ResponseHandler post-processes a command invoker's return value. Response
// handlers are captured by commands at registration, so they must be
// registered before the commands that use them.
type ResponseHandler func(result any, actor Actor, cmd *Command)
