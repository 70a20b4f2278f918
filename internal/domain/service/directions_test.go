package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionsURL_Desktop(t *testing.T) {
	got := DirectionsURL("명동 마라탕", 37.5636, 126.9826, TravelCar, false)
	assert.Equal(t, "https://map.naver.com/v5/directions/-/126.9826,37.5636?menu=route&routeType=car", got)
}

func TestDirectionsURL_Mobile(t *testing.T) {
	tests := []struct {
		mode TravelMode
		want string
	}{
		{TravelWalk, "nmap://route/walk?dlat=37.5&dlng=127&dname=Kimchi%20House"},
		{TravelTransit, "nmap://route/public?dlat=37.5&dlng=127&dname=Kimchi%20House"},
		{TravelCar, "nmap://route/car?dlat=37.5&dlng=127&dname=Kimchi%20House"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, DirectionsURL("Kimchi House", 37.5, 127.0, tt.mode, true))
		})
	}
}

func TestDirectionsURL_EscapesKoreanNames(t *testing.T) {
	got := DirectionsURL("마라탕", 37.5, 127.0, TravelWalk, true)
	assert.Equal(t, "nmap://route/walk?dlat=37.5&dlng=127&dname=%EB%A7%88%EB%9D%BC%ED%83%95", got)
}

func TestParseTravelMode(t *testing.T) {
	assert.Equal(t, TravelWalk, ParseTravelMode(""))
	assert.Equal(t, TravelWalk, ParseTravelMode("bike"))
	assert.Equal(t, TravelCar, ParseTravelMode("car"))
	assert.Equal(t, TravelTransit, ParseTravelMode("transit"))
}

func TestIsMobileUserAgent(t *testing.T) {
	assert.True(t, IsMobileUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"))
	assert.True(t, IsMobileUserAgent("Mozilla/5.0 (Linux; android 14; Pixel 8)"))
	assert.False(t, IsMobileUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64)"))
}
