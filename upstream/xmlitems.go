package upstream

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/mseongj/seoul-transit-proxy/models"
	"golang.org/x/net/html/charset"
)

// ItemTag는 서울 버스 API 응답에서 반복되는 항목 태그입니다.
const ItemTag = "itemList"

var utf8BOM = []byte("\xEF\xBB\xBF")

type xmlFrame struct {
	name     string
	record   *models.Record
	text     strings.Builder
	hasText  bool
	sawChild bool
}

// ExtractItems는 문서 루트 아래 모든 깊이의 itemList 요소를 문서 순서대로 찾아
// 직계 자식 태그 -> 텍스트 레코드로 바꿉니다.
// 자식의 텍스트는 첫 하위 요소 이전의 문자 데이터이며, 없으면 null입니다.
// 올바른 XML이 아니면 부분 결과 없이 *ParseError를 돌려줍니다.
func ExtractItems(data []byte) ([]*models.Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.CharsetReader = charsetReader

	fail := func(err error) ([]*models.Record, error) {
		return nil, &ParseError{Format: "XML", Body: data, Err: err}
	}

	var (
		stack    []*xmlFrame
		items    = make([]*models.Record, 0)
		sawRoot  bool
		rootDone bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootDone {
				return fail(errors.New("junk after document element"))
			}
			sawRoot = true
			f := &xmlFrame{name: t.Name.Local}
			if n := len(stack); n > 0 {
				stack[n-1].sawChild = true
				if t.Name.Local == ItemTag {
					f.record = models.NewRecord()
					items = append(items, f.record)
				}
			}
			stack = append(stack, f)

		case xml.EndElement:
			n := len(stack)
			f := stack[n-1]
			stack = stack[:n-1]
			if n > 1 && stack[n-2].record != nil {
				var v *string
				if f.hasText {
					s := f.text.String()
					v = &s
				}
				stack[n-2].record.Set(f.name, v)
			}
			if len(stack) == 0 {
				rootDone = true
			}

		case xml.CharData:
			n := len(stack)
			if n == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return fail(errors.New("text outside of document element"))
				}
				continue
			}
			if top := stack[n-1]; !top.sawChild {
				top.text.Write(t)
				top.hasText = true
			}
		}
	}
	if !sawRoot {
		return fail(errors.New("no element found"))
	}
	return items, nil
}

// 일부 공공 API는 EUC-KR로 선언된 XML을 돌려줌.
// cp949는 WHATWG 레이블에 없어서 windows-949로 바꿔 찾습니다.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(strings.TrimSpace(label), "cp949") {
		label = "windows-949"
	}
	return charset.NewReaderLabel(label, input)
}
