package flood

import "errors"

//---------------------------------ERROR-CODES---------------------------------

var ErrInvalidWindow = errors.New("collection window must be positive")
var ErrInvalidQueueCapacity = errors.New("reply queue capacity must be positive")
