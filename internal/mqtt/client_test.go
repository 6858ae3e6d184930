package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClimateTemperatureCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/climate/121/temperature/set"
	r := climateTemperatureCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "121", "room id extract")
}

func TestClimateTemperatureCommandParseFail(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/climate/121/temperature/state"
	r := climateTemperatureCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(len(matches), 0, "no matches")
}

func TestClimateModeCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/climate/121/mode/set"
	r := climateModeCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "121", "room id extract")
}

func TestClimatePresetCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/climate/121/preset/set"
	r := climatePresetCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(matches[0][1], "121", "room id extract")
}

func TestClimatePresetCommandParseFail(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	topic := "loremTopic/climate/121/preset/state"
	r := climatePresetCommandExtractor(baseTopic)
	matches := r.FindAllStringSubmatch(topic, 1)

	assert.Equal(len(matches), 0, "no matches")
}

func TestWaterHeaterModeCommandParse(t *testing.T) {

	assert := assert.New(t)

	baseTopic := "loremTopic"
	r := waterHeaterModeCommandExtractor(baseTopic)

	assert.True(r.MatchString("loremTopic/water_heater/mode/set"))
	assert.False(r.MatchString("loremTopic/water_heater/state"))
}
