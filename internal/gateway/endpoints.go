package gateway

import "fmt"

const (
	endpointFollows        = "/v1/streamers/follows"
	endpointStreamersBatch = "/v1/streamers/list"
	endpointFollowingBatch = "/v1/streamers/following/batch"
	endpointSchedules      = "/v1/schedules"
)

func endpointFollow(streamerUuid string) string {
	return fmt.Sprintf("/v1/streamers/%s/follow", streamerUuid)
}

func endpointSchedule(scheduleUuid string) string {
	return fmt.Sprintf("/v1/schedules/%s", scheduleUuid)
}
