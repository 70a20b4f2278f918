package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

type TravelMode string

const (
	TravelWalk    TravelMode = "walk"
	TravelCar     TravelMode = "car"
	TravelTransit TravelMode = "transit"
)

// ParseTravelMode defaults to walking for empty or unknown modes.
func ParseTravelMode(s string) TravelMode {
	switch TravelMode(s) {
	case TravelCar, TravelTransit:
		return TravelMode(s)
	}
	return TravelWalk
}

var mobileUA = regexp.MustCompile(`(?i)Android|iPhone`)

func IsMobileUserAgent(ua string) bool {
	return mobileUA.MatchString(ua)
}

// DirectionsURL builds the Naver Map hand-off for a destination: an app deep
// link on mobile, the web route planner otherwise.
func DirectionsURL(name string, lat, lng float64, mode TravelMode, mobile bool) string {
	la := strconv.FormatFloat(lat, 'f', -1, 64)
	ln := strconv.FormatFloat(lng, 'f', -1, 64)

	if mobile {
		route := "walk"
		switch mode {
		case TravelTransit:
			route = "public"
		case TravelCar:
			route = "car"
		}
		return fmt.Sprintf("nmap://route/%s?dlat=%s&dlng=%s&dname=%s", route, la, ln, escapeComponent(name))
	}

	return fmt.Sprintf("https://map.naver.com/v5/directions/-/%s,%s?menu=route&routeType=%s", ln, la, mode)
}

// escapeComponent percent-encodes like a URI component: spaces become %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
