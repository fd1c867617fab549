package dto

// PageDescriptor tells the browser bundle which view to mount.
type PageDescriptor struct {
	Page   string            `json:"page"`
	Path   string            `json:"path"`
	Params map[string]string `json:"params,omitempty"`
	User   *UserResponse     `json:"user,omitempty"`
}
